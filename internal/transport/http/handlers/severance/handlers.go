package severancehandler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lexlaboral/internal/domain/auth"
	"lexlaboral/internal/domain/severance"
	"lexlaboral/internal/transport/http/api"
	"lexlaboral/internal/transport/http/middleware"
	"lexlaboral/internal/transport/http/shared"
)

type Handler struct {
	Service *severance.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *severance.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/severance", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Post("/report", h.handleReport)
		r.With(middleware.RequirePermission(auth.PermSeveranceRead, h.Perms)).Get("/calculations", h.handleListCalculations)
		r.With(middleware.RequirePermission(auth.PermSeveranceRead, h.Perms)).Get("/calculations/{id}", h.handleGetCalculation)
	})
}

type calculateRequest struct {
	HireDate             string          `json:"hireDate"`
	TerminationDate      string          `json:"terminationDate"`
	EvaluationDate       string          `json:"evaluationDate"`
	DailySalary          decimal.Decimal `json:"dailySalary"`
	MonthlySalary        decimal.Decimal `json:"monthlySalary"`
	TerminationType      string          `json:"terminationType"`
	UnpaidWages          decimal.Decimal `json:"unpaidWages"`
	UnpaidOvertime       decimal.Decimal `json:"unpaidOvertime"`
	SundayPremium        decimal.Decimal `json:"sundayPremium"`
	HolidayPay           decimal.Decimal `json:"holidayPay"`
	PendingVacationYears int             `json:"pendingVacationYears"`
}

type reportRequest struct {
	calculateRequest
	ClientName string `json:"clientName"`
	CaseRef    string `json:"caseRef"`
}

func (req calculateRequest) record(v *shared.Validator) severance.EmploymentRecord {
	record := severance.EmploymentRecord{
		DailySalary:          req.DailySalary,
		MonthlySalary:        req.MonthlySalary,
		TerminationType:      severance.TerminationType(strings.ToLower(strings.TrimSpace(req.TerminationType))),
		UnpaidWages:          req.UnpaidWages,
		UnpaidOvertime:       req.UnpaidOvertime,
		SundayPremium:        req.SundayPremium,
		HolidayPay:           req.HolidayPay,
		PendingVacationYears: req.PendingVacationYears,
	}
	record.HireDate, _ = v.Date("hireDate", req.HireDate)
	record.TerminationDate, _ = v.Date("terminationDate", req.TerminationDate)
	if strings.TrimSpace(req.EvaluationDate) != "" {
		record.EvaluationDate, _ = v.Date("evaluationDate", req.EvaluationDate)
	}

	allowed := make([]string, 0, len(severance.TerminationTypes))
	for _, t := range severance.TerminationTypes {
		allowed = append(allowed, string(t))
	}
	v.Required("terminationType", req.TerminationType, "is required")
	v.Enum("terminationType", req.TerminationType, allowed, "must be one of "+strings.Join(allowed, ", "))
	if req.DailySalary.IsZero() && req.MonthlySalary.IsZero() {
		v.Add("dailySalary", "dailySalary or monthlySalary is required")
	}
	if req.DailySalary.IsNegative() {
		v.Add("dailySalary", "must not be negative")
	}
	if req.MonthlySalary.IsNegative() {
		v.Add("monthlySalary", "must not be negative")
	}
	return record
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var req calculateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	v := shared.NewValidator()
	record := req.record(v)
	if v.Reject(w, requestID) {
		return
	}

	calc, err := h.Service.Calculate(r.Context(), actorFrom(r), record)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	if calc.ID != "" {
		api.Created(w, calc, requestID)
		return
	}
	api.Success(w, calc, requestID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var req reportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	v := shared.NewValidator()
	record := req.record(v)
	if len(req.ClientName) > 200 {
		v.Add("clientName", "must be at most 200 characters")
	}
	if len(req.CaseRef) > 100 {
		v.Add("caseRef", "must be at most 100 characters")
	}
	if v.Reject(w, requestID) {
		return
	}

	var buf bytes.Buffer
	meta := severance.ReportMeta{ClientName: strings.TrimSpace(req.ClientName), CaseRef: strings.TrimSpace(req.CaseRef)}
	if err := h.Service.Report(&buf, record, meta); err != nil {
		h.fail(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=liquidacion.pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("write severance report failed", "requestId", requestID, "err", err)
	}
}

func (h *Handler) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 20, 100)

	items, total, err := h.Service.List(r.Context(), user.TenantID, page.Limit, page.Offset)
	if err != nil {
		slog.Warn("list severance calculations failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "severance_list_failed", "failed to list calculations", requestID)
		return
	}
	if items == nil {
		items = []severance.CalculationSummary{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, items, requestID)
}

func (h *Handler) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", severance.ErrCalculationNotFound.Error(), requestID)
		return
	}
	calc, err := h.Service.Get(r.Context(), user.TenantID, id)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	api.Success(w, calc, requestID)
}

func (h *Handler) fail(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, severance.ErrInvalidDateRange):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_date_range", err.Error(), requestID)
	case errors.Is(err, severance.ErrInvalidSalary):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_salary", err.Error(), requestID)
	case errors.Is(err, severance.ErrUnknownTerminationType):
		api.Fail(w, http.StatusBadRequest, "unknown_termination_type", err.Error(), requestID)
	case errors.Is(err, severance.ErrCalculationNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	default:
		slog.Warn("severance request failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "severance_failed", "failed to process calculation", requestID)
	}
}

func actorFrom(r *http.Request) severance.Actor {
	actor := severance.Actor{
		RequestID: middleware.GetRequestID(r.Context()),
		IP:        shared.ClientIP(r),
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		actor.TenantID = user.TenantID
		actor.UserID = user.UserID
	}
	return actor
}
