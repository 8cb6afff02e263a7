package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"lexlaboral/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateExtraction(ctx context.Context, tenantID string, rec StoredExtraction) (string, error) {
	var curpIndex any
	if rec.CURPIndex != "" {
		curpIndex = rec.CURPIndex
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO identity_extractions (tenant_id, user_id, side, confidence, curp_index, result_enc)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, tenantID, rec.UserID, string(rec.Side), rec.Confidence, curpIndex, rec.Payload).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetExtraction(ctx context.Context, tenantID, extractionID string) (StoredExtraction, error) {
	rec, err := scanExtraction(s.DB.QueryRow(ctx, `
    SELECT id, user_id, side, confidence, COALESCE(curp_index, ''), result_enc, created_at
    FROM identity_extractions
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, extractionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return StoredExtraction{}, ErrExtractionNotFound
	}
	return rec, err
}

func (s *Store) FindByCURPIndex(ctx context.Context, tenantID, curpIndex string) ([]StoredExtraction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, side, confidence, COALESCE(curp_index, ''), result_enc, created_at
    FROM identity_extractions
    WHERE tenant_id = $1 AND curp_index = $2
    ORDER BY created_at DESC
  `, tenantID, curpIndex)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredExtraction
	for rows.Next() {
		rec, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) CountExtractions(ctx context.Context, tenantID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM identity_extractions
    WHERE tenant_id = $1
  `, tenantID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListExtractions(ctx context.Context, tenantID string, limit, offset int) ([]ExtractionSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, side, confidence, curp_index IS NOT NULL, created_at
    FROM identity_extractions
    WHERE tenant_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExtractionSummary
	for rows.Next() {
		var summary ExtractionSummary
		var side string
		if err := rows.Scan(&summary.ID, &side, &summary.ConfidenceScore, &summary.HasCURP, &summary.CreatedAt); err != nil {
			return nil, err
		}
		summary.Side = Side(side)
		out = append(out, summary)
	}
	return out, rows.Err()
}

func (s *Store) DeleteExtractionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM identity_extractions
    WHERE created_at < $1
  `, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanExtraction(row pgx.Row) (StoredExtraction, error) {
	var rec StoredExtraction
	var side string
	if err := row.Scan(&rec.ID, &rec.UserID, &side, &rec.Confidence, &rec.CURPIndex, &rec.Payload, &rec.CreatedAt); err != nil {
		return StoredExtraction{}, err
	}
	rec.Side = Side(side)
	return rec, nil
}
