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

// saleRepository implements the adapter.SaleRepository interface.
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository instance.
func NewSaleRepository(db *gorm.DB) adapter.SaleRepository {
	return &saleRepository{
		db: db,
	}
}

// Create persists a sale row with its product entries for a member.
func (r *saleRepository) Create(ctx context.Context, memberID uuid.UUID, row *entity.SaleRow) error {
	saleModel := model.ProductSaleFromEntity(memberID, row)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := saleModel.Items
		saleModel.Items = nil
		if err := tx.Create(saleModel).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindRowsByMember retrieves the member's sale rows with their product
// entries, ordered chronologically.
func (r *saleRepository) FindRowsByMember(ctx context.Context, memberID uuid.UUID) ([]*entity.SaleRow, error) {
	var saleModels []model.ProductSaleModel
	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_items.position ASC")
		}).
		Where("member_id = ?", memberID).
		Order("sale_date ASC, dofa ASC").
		Find(&saleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rows := make([]*entity.SaleRow, 0, len(saleModels))
	for i := range saleModels {
		rows = append(rows, saleModels[i].ToEntity())
	}
	return rows, nil
}

// FindRowBySaleTransactionID retrieves a single sale row for a member.
func (r *saleRepository) FindRowBySaleTransactionID(ctx context.Context, memberID uuid.UUID, saleTransactionID string) (*entity.SaleRow, error) {
	var saleModel model.ProductSaleModel
	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_items.position ASC")
		}).
		Where("member_id = ? AND sale_transaction_id = ?", memberID, saleTransactionID).
		First(&saleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSaleNotFound
		}
		return nil, result.Error
	}
	return saleModel.ToEntity(), nil
}

// NextDofa returns the next display-ordering sequence number for a member's
// sales.
func (r *saleRepository) NextDofa(ctx context.Context, memberID uuid.UUID) (int, error) {
	var maxDofa *int
	result := r.db.WithContext(ctx).
		Model(&model.ProductSaleModel{}).
		Select("MAX(dofa)").
		Where("member_id = ?", memberID).
		Scan(&maxDofa)
	if result.Error != nil {
		return 0, result.Error
	}
	if maxDofa == nil {
		return 1, nil
	}
	return *maxDofa + 1, nil
}

// GetOutstandingTotals aggregates sold versus collected amounts across a
// collector's members. Stored paid amounts are refreshed by the aggregation
// engine whenever a sheet or ledger is rendered.
func (r *saleRepository) GetOutstandingTotals(ctx context.Context, collectorID uuid.UUID) (*adapter.OutstandingTotals, error) {
	type sums struct {
		TotalSold      decimal.Decimal
		TotalCollected decimal.Decimal
		ActiveSales    int64
	}
	var row sums

	result := r.db.WithContext(ctx).
		Model(&model.SaleItemModel{}).
		Select(`
			COALESCE(SUM(sale_items.total_amount), 0) AS total_sold,
			COALESCE(SUM(sale_items.paid_amount), 0) AS total_collected,
			COUNT(DISTINCT CASE WHEN sale_items.paid_amount < sale_items.total_amount THEN product_sales.id END) AS active_sales`).
		Joins("JOIN product_sales ON product_sales.id = sale_items.sale_id").
		Joins("JOIN members ON members.id = product_sales.member_id").
		Where("members.collector_id = ?", collectorID).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}

	outstanding := row.TotalSold.Sub(row.TotalCollected)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	return &adapter.OutstandingTotals{
		TotalSold:        row.TotalSold,
		TotalCollected:   row.TotalCollected,
		TotalOutstanding: outstanding,
		ActiveSales:      row.ActiveSales,
	}, nil
}
