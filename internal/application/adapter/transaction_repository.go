// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
)

// DailyTotals represents aggregated collection figures for one calendar day.
type DailyTotals struct {
	CollectionTotal decimal.Decimal
	SavingsInTotal  decimal.Decimal
	SavingsOutTotal decimal.Decimal
	RecordCount     int64
}

// TransactionRepository defines the interface for collection-record persistence
// operations. Collection records are append-mostly; reconciliation never
// mutates them.
type TransactionRepository interface {
	// Create creates a new collection record in the database.
	Create(ctx context.Context, record *entity.CollectionRecord) error

	// FindByMember retrieves every collection record of a member, ordered by
	// creation time. The full history is needed to derive row paid amounts and
	// legacy savings balances.
	FindByMember(ctx context.Context, memberID uuid.UUID) ([]*entity.CollectionRecord, error)

	// FindByCollectorAndDay retrieves all records collected on the given day
	// (by collection date) across a collector's members.
	FindByCollectorAndDay(ctx context.Context, collectorID uuid.UUID, day time.Time) ([]*entity.CollectionRecord, error)

	// GetDailyTotals aggregates collected amounts for a collector on the
	// given day.
	GetDailyTotals(ctx context.Context, collectorID uuid.UUID, day time.Time) (*DailyTotals, error)
}
