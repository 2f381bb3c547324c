// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
)

// OutstandingTotals represents the pending credit position across a
// collector's members.
type OutstandingTotals struct {
	TotalSold        decimal.Decimal
	TotalCollected   decimal.Decimal
	TotalOutstanding decimal.Decimal
	ActiveSales      int64
}

// SaleRepository defines the interface for product-sale persistence operations.
type SaleRepository interface {
	// Create persists a sale row with its product entries for a member.
	Create(ctx context.Context, memberID uuid.UUID, row *entity.SaleRow) error

	// FindRowsByMember retrieves the member's sale rows with their product
	// entries. Stored paid amounts are starting points only; the aggregation
	// engine recomputes them per pass.
	FindRowsByMember(ctx context.Context, memberID uuid.UUID) ([]*entity.SaleRow, error)

	// FindRowBySaleTransactionID retrieves a single sale row for a member.
	FindRowBySaleTransactionID(ctx context.Context, memberID uuid.UUID, saleTransactionID string) (*entity.SaleRow, error)

	// NextDofa returns the next display-ordering sequence number for a
	// member's sales.
	NextDofa(ctx context.Context, memberID uuid.UUID) (int, error)

	// GetOutstandingTotals aggregates sold versus collected amounts across a
	// collector's members.
	GetOutstandingTotals(ctx context.Context, collectorID uuid.UUID) (*OutstandingTotals, error)
}
