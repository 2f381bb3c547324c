// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
)

// MemberRepository defines the interface for member persistence operations.
type MemberRepository interface {
	// Create creates a new member in the database.
	Create(ctx context.Context, member *entity.Member) error

	// FindByID retrieves a member by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)

	// FindByCollector retrieves all members served by a collector, ordered by name.
	FindByCollector(ctx context.Context, collectorID uuid.UUID) ([]*entity.Member, error)

	// Update updates an existing member in the database.
	Update(ctx context.Context, member *entity.Member) error

	// Delete removes a member from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustTotalSavings adds delta (which may be negative) to the member's
	// running savings balance. Members without a tracked balance are left
	// untouched.
	AdjustTotalSavings(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// ExistsByIDAndCollector checks if a member belongs to the given collector.
	ExistsByIDAndCollector(ctx context.Context, id uuid.UUID, collectorID uuid.UUID) (bool, error)
}
