package severance

import "context"

type StoreAPI interface {
	CreateCalculation(ctx context.Context, tenantID string, calc Calculation) (string, error)
	GetCalculation(ctx context.Context, tenantID, calculationID string) (Calculation, error)
	CountCalculations(ctx context.Context, tenantID string) (int, error)
	ListCalculations(ctx context.Context, tenantID string, limit, offset int) ([]CalculationSummary, error)
}
