package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"lexlaboral/internal/requestctx"
)

type Cipher interface {
	Configured() bool
	Encrypt(plain []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

type Indexer interface {
	Configured() bool
	Index(value string) string
}

type AuditRecorder interface {
	Record(ctx context.Context, tenantID, actorID, action, entityType, entityID, requestID, ip string, before, after any) error
}

type MetricsRecorder interface {
	ObserveIdentity(side string, confidence int)
}

type Service struct {
	store   StoreAPI
	cipher  Cipher
	index   Indexer
	audit   AuditRecorder
	metrics MetricsRecorder
	policy  *bluemonday.Policy
	now     func() time.Time
}

// NewService builds the identity service. Results are only persisted when a
// store is present and cipher is configured, so raw identity data never
// reaches the database in clear.
func NewService(store StoreAPI, cipher Cipher, index Indexer, audit AuditRecorder, metrics MetricsRecorder) *Service {
	return &Service{
		store:   store,
		cipher:  cipher,
		index:   index,
		audit:   audit,
		metrics: metrics,
		policy:  bluemonday.StrictPolicy(),
		now:     time.Now,
	}
}

func (s *Service) Extract(ctx context.Context, actor Actor, raw string, format Format) (Extraction, error) {
	text, err := prepareText(s.policy, raw, format)
	if err != nil {
		return Extraction{}, err
	}
	result := ExtractIdentityFields(text)
	s.observe(result)
	return s.keep(ctx, actor, "identity.extract", result)
}

// Combine extracts both faces of a card and merges them.
func (s *Service) Combine(ctx context.Context, actor Actor, frontRaw, backRaw string, format Format) (Extraction, error) {
	frontText, err := prepareText(s.policy, frontRaw, format)
	if err != nil {
		return Extraction{}, fmt.Errorf("front: %w", err)
	}
	backText, err := prepareText(s.policy, backRaw, format)
	if err != nil {
		return Extraction{}, fmt.Errorf("back: %w", err)
	}
	front := ExtractIdentityFields(frontText)
	back := ExtractIdentityFields(backText)
	s.observe(front)
	s.observe(back)
	return s.keep(ctx, actor, "identity.combine", CombineFrontAndBack(front, back))
}

// Validate extracts text when no result is supplied and compares it with the
// claimed values.
func (s *Service) Validate(raw string, format Format, extracted *Result, claimed Claimed) (Result, Validation, error) {
	if extracted == nil {
		text, err := prepareText(s.policy, raw, format)
		if err != nil {
			return Result{}, Validation{}, err
		}
		result := ExtractIdentityFields(text)
		s.observe(result)
		extracted = &result
	}
	return *extracted, ValidateAgainstUserInput(*extracted, claimed), nil
}

func (s *Service) keep(ctx context.Context, actor Actor, action string, result Result) (Extraction, error) {
	ext := Extraction{
		UserID:    actor.UserID,
		Side:      result.Side,
		Result:    result,
		CreatedAt: s.now().UTC(),
	}
	if s.store == nil || !actor.Authenticated() {
		return ext, nil
	}
	if s.cipher == nil || !s.cipher.Configured() {
		requestctx.Logger(ctx).Warn("identity extraction not persisted: encryption key not configured")
		return ext, nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return Extraction{}, err
	}
	encrypted, err := s.cipher.Encrypt(payload)
	if err != nil {
		return Extraction{}, fmt.Errorf("encrypt extraction: %w", err)
	}
	rec := StoredExtraction{
		UserID:     actor.UserID,
		Side:       result.Side,
		Confidence: result.ConfidenceScore,
		Payload:    encrypted,
	}
	if result.CURP != "" && s.index != nil && s.index.Configured() {
		rec.CURPIndex = s.index.Index(result.CURP)
	}
	id, err := s.store.CreateExtraction(ctx, actor.TenantID, rec)
	if err != nil {
		return Extraction{}, fmt.Errorf("persist extraction: %w", err)
	}
	ext.ID = id

	if s.audit != nil {
		after := map[string]any{"side": result.Side, "confidence": result.ConfidenceScore, "warnings": len(result.Warnings)}
		if err := s.audit.Record(ctx, actor.TenantID, actor.UserID, action, "identity_extraction", id, actor.RequestID, actor.IP, nil, after); err != nil {
			requestctx.Logger(ctx).Warn("audit "+action+" failed", "err", err)
		}
	}
	return ext, nil
}

func (s *Service) Get(ctx context.Context, tenantID, extractionID string) (Extraction, error) {
	if s.store == nil {
		return Extraction{}, ErrExtractionNotFound
	}
	rec, err := s.store.GetExtraction(ctx, tenantID, extractionID)
	if err != nil {
		return Extraction{}, err
	}
	return s.open(rec)
}

// FindByCURP returns stored extractions whose CURP matches, newest first.
func (s *Service) FindByCURP(ctx context.Context, tenantID, curp string) ([]Extraction, error) {
	curp = strings.ToUpper(strings.TrimSpace(curp))
	if !curpCandidatePattern.MatchString(curp) || len(curp) != 18 {
		return nil, ErrInvalidCURP
	}
	if s.index == nil || !s.index.Configured() {
		return nil, ErrEncryptionRequired
	}
	if s.store == nil {
		return []Extraction{}, nil
	}
	recs, err := s.store.FindByCURPIndex(ctx, tenantID, s.index.Index(curp))
	if err != nil {
		return nil, err
	}
	out := make([]Extraction, 0, len(recs))
	for _, rec := range recs {
		ext, err := s.open(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, ext)
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]ExtractionSummary, int, error) {
	if s.store == nil {
		return nil, 0, nil
	}
	total, err := s.store.CountExtractions(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.store.ListExtractions(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PurgeBefore deletes extractions created before cutoff across all tenants.
func (s *Service) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	return s.store.DeleteExtractionsBefore(ctx, cutoff)
}

func (s *Service) open(rec StoredExtraction) (Extraction, error) {
	if s.cipher == nil || !s.cipher.Configured() {
		return Extraction{}, ErrEncryptionRequired
	}
	plain, err := s.cipher.Decrypt(rec.Payload)
	if err != nil {
		return Extraction{}, fmt.Errorf("decrypt extraction: %w", err)
	}
	var result Result
	if err := json.Unmarshal(plain, &result); err != nil {
		return Extraction{}, err
	}
	return Extraction{ID: rec.ID, UserID: rec.UserID, Side: rec.Side, Result: result, CreatedAt: rec.CreatedAt}, nil
}

func (s *Service) observe(result Result) {
	if s.metrics != nil {
		s.metrics.ObserveIdentity(string(result.Side), result.ConfidenceScore)
	}
}
