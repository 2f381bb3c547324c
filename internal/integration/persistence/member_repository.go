// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/integration/persistence/model"
)

// memberRepository implements the adapter.MemberRepository interface.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository instance.
func NewMemberRepository(db *gorm.DB) adapter.MemberRepository {
	return &memberRepository{
		db: db,
	}
}

// Create creates a new member in the database.
func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	memberModel := model.MemberFromEntity(member)
	result := r.db.WithContext(ctx).Create(memberModel)
	return result.Error
}

// FindByID retrieves a member by their ID.
func (r *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	var memberModel model.MemberModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&memberModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrMemberNotFound
		}
		return nil, result.Error
	}
	return memberModel.ToEntity(), nil
}

// FindByCollector retrieves all members served by a collector, ordered by name.
func (r *memberRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID) ([]*entity.Member, error) {
	var memberModels []model.MemberModel
	result := r.db.WithContext(ctx).
		Where("collector_id = ?", collectorID).
		Order("name ASC").
		Find(&memberModels)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]*entity.Member, 0, len(memberModels))
	for i := range memberModels {
		members = append(members, memberModels[i].ToEntity())
	}
	return members, nil
}

// Update updates an existing member in the database.
func (r *memberRepository) Update(ctx context.Context, member *entity.Member) error {
	memberModel := model.MemberFromEntity(member)
	result := r.db.WithContext(ctx).Save(memberModel)
	return result.Error
}

// Delete removes a member from the database.
func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.MemberModel{}, "id = ?", id)
	return result.Error
}

// AdjustTotalSavings adds delta to the member's running savings balance.
// Members without a tracked balance (legacy rows) are left untouched.
func (r *memberRepository) AdjustTotalSavings(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&model.MemberModel{}).
		Where("id = ? AND total_savings IS NOT NULL", id).
		Update("total_savings", gorm.Expr("total_savings + ?", delta))
	return result.Error
}

// ExistsByIDAndCollector checks if a member belongs to the given collector.
func (r *memberRepository) ExistsByIDAndCollector(ctx context.Context, id uuid.UUID, collectorID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.MemberModel{}).
		Where("id = ? AND collector_id = ?", id, collectorID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
