package severance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"lexlaboral/internal/requestctx"
)

type AuditRecorder interface {
	Record(ctx context.Context, tenantID, actorID, action, entityType, entityID, requestID, ip string, before, after any) error
}

type MetricsRecorder interface {
	ObserveSeverance(terminationType, outcome string)
}

type Service struct {
	store   StoreAPI
	audit   AuditRecorder
	metrics MetricsRecorder
	now     func() time.Time
}

// NewService wires the calculator to its collaborators. store, audit and
// metrics may be nil; calculations are then returned without being kept.
func NewService(store StoreAPI, audit AuditRecorder, metrics MetricsRecorder) *Service {
	return &Service{store: store, audit: audit, metrics: metrics, now: time.Now}
}

func (s *Service) Calculate(ctx context.Context, actor Actor, record EmploymentRecord) (Calculation, error) {
	record = s.withEvaluationDate(record)
	breakdown, err := ComputeSeverance(record)
	if err != nil {
		s.observe(record.TerminationType, outcomeFor(err))
		return Calculation{}, err
	}
	s.observe(record.TerminationType, "ok")

	calc := Calculation{
		UserID:    actor.UserID,
		Input:     record,
		Breakdown: breakdown,
		CreatedAt: s.now().UTC(),
	}
	if s.store == nil || !actor.Authenticated() {
		return calc, nil
	}

	id, err := s.store.CreateCalculation(ctx, actor.TenantID, calc)
	if err != nil {
		return Calculation{}, fmt.Errorf("persist calculation: %w", err)
	}
	calc.ID = id

	if s.audit != nil {
		if err := s.audit.Record(ctx, actor.TenantID, actor.UserID, "severance.calculate", "severance_calculation", id, actor.RequestID, actor.IP, nil, record); err != nil {
			requestctx.Logger(ctx).Warn("audit severance.calculate failed", "err", err)
		}
	}
	return calc, nil
}

func (s *Service) Get(ctx context.Context, tenantID, calculationID string) (Calculation, error) {
	if s.store == nil {
		return Calculation{}, ErrCalculationNotFound
	}
	return s.store.GetCalculation(ctx, tenantID, calculationID)
}

func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]CalculationSummary, int, error) {
	if s.store == nil {
		return nil, 0, nil
	}
	total, err := s.store.CountCalculations(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.store.ListCalculations(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Report computes the breakdown for record and writes it as a PDF to w.
func (s *Service) Report(w io.Writer, record EmploymentRecord, meta ReportMeta) error {
	record = s.withEvaluationDate(record)
	breakdown, err := ComputeSeverance(record)
	if err != nil {
		s.observe(record.TerminationType, outcomeFor(err))
		return err
	}
	s.observe(record.TerminationType, "report")
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = s.now()
	}
	return RenderReport(w, breakdown, meta)
}

// withEvaluationDate fills a missing evaluation date with today so back pay
// during trial accrues up to the day the claim is evaluated. Terminations
// dated in the future keep the zero value.
func (s *Service) withEvaluationDate(record EmploymentRecord) EmploymentRecord {
	if !record.EvaluationDate.IsZero() {
		return record
	}
	today := dateOnly(s.now())
	if today.After(dateOnly(record.TerminationDate)) {
		record.EvaluationDate = today
	}
	return record
}

func (s *Service) observe(terminationType TerminationType, outcome string) {
	if s.metrics == nil {
		return
	}
	label := string(terminationType)
	if !terminationType.Valid() {
		label = "unknown"
	}
	s.metrics.ObserveSeverance(label, outcome)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDateRange):
		return "invalid_date_range"
	case errors.Is(err, ErrInvalidSalary):
		return "invalid_salary"
	case errors.Is(err, ErrUnknownTerminationType):
		return "unknown_termination_type"
	default:
		return "error"
	}
}
