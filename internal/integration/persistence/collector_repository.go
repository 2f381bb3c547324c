// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/integration/persistence/model"
)

// collectorRepository implements the adapter.CollectorRepository interface.
type collectorRepository struct {
	db *gorm.DB
}

// NewCollectorRepository creates a new collector repository instance.
func NewCollectorRepository(db *gorm.DB) adapter.CollectorRepository {
	return &collectorRepository{
		db: db,
	}
}

// Create creates a new collector in the database.
func (r *collectorRepository) Create(ctx context.Context, collector *entity.Collector) error {
	collectorModel := model.CollectorFromEntity(collector)
	result := r.db.WithContext(ctx).Create(collectorModel)
	return result.Error
}

// FindByID retrieves a collector by their ID.
func (r *collectorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Collector, error) {
	var collectorModel model.CollectorModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&collectorModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCollectorNotFound
		}
		return nil, result.Error
	}
	return collectorModel.ToEntity(), nil
}

// FindByEmail retrieves a collector by their email address.
func (r *collectorRepository) FindByEmail(ctx context.Context, email string) (*entity.Collector, error) {
	var collectorModel model.CollectorModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&collectorModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCollectorNotFound
		}
		return nil, result.Error
	}
	return collectorModel.ToEntity(), nil
}

// Update updates an existing collector in the database.
func (r *collectorRepository) Update(ctx context.Context, collector *entity.Collector) error {
	collectorModel := model.CollectorFromEntity(collector)
	result := r.db.WithContext(ctx).Save(collectorModel)
	return result.Error
}

// ExistsByEmail checks if a collector with the given email exists.
func (r *collectorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.CollectorModel{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
