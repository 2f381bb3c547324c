// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/field-console/backend/internal/domain/entity"
)

// CollectorRepository defines the interface for collector persistence operations.
type CollectorRepository interface {
	// Create creates a new collector in the database.
	Create(ctx context.Context, collector *entity.Collector) error

	// FindByID retrieves a collector by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Collector, error)

	// FindByEmail retrieves a collector by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.Collector, error)

	// Update updates an existing collector in the database.
	Update(ctx context.Context, collector *entity.Collector) error

	// ExistsByEmail checks if a collector with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
