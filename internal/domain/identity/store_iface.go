package identity

import (
	"context"
	"time"
)

// StoredExtraction is the at-rest form of an extraction. Payload holds the
// encrypted Result; CURPIndex is a keyed hash of the CURP.
type StoredExtraction struct {
	ID         string
	UserID     string
	Side       Side
	Confidence int
	CURPIndex  string
	Payload    []byte
	CreatedAt  time.Time
}

type StoreAPI interface {
	CreateExtraction(ctx context.Context, tenantID string, rec StoredExtraction) (string, error)
	GetExtraction(ctx context.Context, tenantID, extractionID string) (StoredExtraction, error)
	FindByCURPIndex(ctx context.Context, tenantID, curpIndex string) ([]StoredExtraction, error)
	CountExtractions(ctx context.Context, tenantID string) (int, error)
	ListExtractions(ctx context.Context, tenantID string, limit, offset int) ([]ExtractionSummary, error)
	DeleteExtractionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
