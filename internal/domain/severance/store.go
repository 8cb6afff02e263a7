package severance

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"lexlaboral/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateCalculation(ctx context.Context, tenantID string, calc Calculation) (string, error) {
	inputJSON, err := json.Marshal(calc.Input)
	if err != nil {
		return "", err
	}
	breakdownJSON, err := json.Marshal(calc.Breakdown)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO severance_calculations (tenant_id, user_id, termination_type, conciliation_net, litigation_net, input_json, breakdown_json)
    VALUES ($1,$2,$3,$4::numeric,$5::numeric,$6,$7)
    RETURNING id
  `, tenantID, calc.UserID, string(calc.Breakdown.TerminationType),
		calc.Breakdown.Conciliation.NetTotal.String(), calc.Breakdown.Litigation.NetTotal.String(),
		inputJSON, breakdownJSON).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetCalculation(ctx context.Context, tenantID, calculationID string) (Calculation, error) {
	var calc Calculation
	var inputJSON, breakdownJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id::text, input_json, breakdown_json, created_at
    FROM severance_calculations
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, calculationID).Scan(&calc.ID, &calc.UserID, &inputJSON, &breakdownJSON, &calc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Calculation{}, ErrCalculationNotFound
	}
	if err != nil {
		return Calculation{}, err
	}
	if err := json.Unmarshal(inputJSON, &calc.Input); err != nil {
		return Calculation{}, err
	}
	if err := json.Unmarshal(breakdownJSON, &calc.Breakdown); err != nil {
		return Calculation{}, err
	}
	return calc, nil
}

func (s *Store) CountCalculations(ctx context.Context, tenantID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM severance_calculations
    WHERE tenant_id = $1
  `, tenantID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListCalculations(ctx context.Context, tenantID string, limit, offset int) ([]CalculationSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, termination_type, conciliation_net::text, litigation_net::text, created_at
    FROM severance_calculations
    WHERE tenant_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CalculationSummary
	for rows.Next() {
		var summary CalculationSummary
		var terminationType, conciliationNet, litigationNet string
		if err := rows.Scan(&summary.ID, &terminationType, &conciliationNet, &litigationNet, &summary.CreatedAt); err != nil {
			return nil, err
		}
		summary.TerminationType = TerminationType(terminationType)
		if summary.ConciliationNet, err = decimal.NewFromString(conciliationNet); err != nil {
			return nil, err
		}
		if summary.LitigationNet, err = decimal.NewFromString(litigationNet); err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}
