// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new collection record in the database.
func (r *transactionRepository) Create(ctx context.Context, record *entity.CollectionRecord) error {
	recordModel := model.CollectionRecordFromEntity(record)
	result := r.db.WithContext(ctx).Create(recordModel)
	return result.Error
}

// FindByMember retrieves every collection record of a member, ordered by
// creation time.
func (r *transactionRepository) FindByMember(ctx context.Context, memberID uuid.UUID) ([]*entity.CollectionRecord, error) {
	var recordModels []model.CollectionRecordModel
	result := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRecordEntities(recordModels), nil
}

// FindByCollectorAndDay retrieves all records collected on the given day
// across a collector's members.
func (r *transactionRepository) FindByCollectorAndDay(ctx context.Context, collectorID uuid.UUID, day time.Time) ([]*entity.CollectionRecord, error) {
	start, end := dayBounds(day)

	var recordModels []model.CollectionRecordModel
	result := r.db.WithContext(ctx).
		Joins("JOIN members ON members.id = transactions.member_id").
		Where("members.collector_id = ?", collectorID).
		Where("transactions.collection_date >= ? AND transactions.collection_date < ?", start, end).
		Order("transactions.collection_date ASC").
		Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRecordEntities(recordModels), nil
}

// GetDailyTotals aggregates collected amounts for a collector on the given
// day. The coarse type column is good enough for dashboard figures; the
// note-text classifier governs only attribution. Notes carrying the sale
// marker anywhere are never savings movements, matching the classifier.
func (r *transactionRepository) GetDailyTotals(ctx context.Context, collectorID uuid.UUID, day time.Time) (*adapter.DailyTotals, error) {
	start, end := dayBounds(day)

	type sums struct {
		CollectionTotal decimal.Decimal
		SavingsInTotal  decimal.Decimal
		SavingsOutTotal decimal.Decimal
		RecordCount     int64
	}
	var row sums

	result := r.db.WithContext(ctx).
		Model(&model.CollectionRecordModel{}).
		Select(`
			COALESCE(SUM(CASE WHEN transactions.type = 'regular' THEN COALESCE(transactions.paid_amount, transactions.amount) ELSE 0 END), 0) AS collection_total,
			COALESCE(SUM(CASE WHEN transactions.type = 'extra' AND LOWER(transactions.note) NOT LIKE '%withdrawal%' AND LOWER(transactions.note) NOT LIKE '%product sale:%' THEN COALESCE(transactions.paid_amount, transactions.amount) ELSE 0 END), 0) AS savings_in_total,
			COALESCE(SUM(CASE WHEN transactions.type = 'extra' AND LOWER(transactions.note) LIKE '%withdrawal%' AND LOWER(transactions.note) NOT LIKE '%product sale:%' THEN COALESCE(transactions.paid_amount, transactions.amount) ELSE 0 END), 0) AS savings_out_total,
			COUNT(*) AS record_count`).
		Joins("JOIN members ON members.id = transactions.member_id").
		Where("members.collector_id = ?", collectorID).
		Where("transactions.collection_date >= ? AND transactions.collection_date < ?", start, end).
		Where("transactions.status = ?", string(entity.RecordStatusCollected)).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}

	return &adapter.DailyTotals{
		CollectionTotal: row.CollectionTotal,
		SavingsInTotal:  row.SavingsInTotal,
		SavingsOutTotal: row.SavingsOutTotal,
		RecordCount:     row.RecordCount,
	}, nil
}

// dayBounds returns the UTC half-open interval covering the calendar day.
func dayBounds(day time.Time) (time.Time, time.Time) {
	utc := day.UTC()
	start := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func toRecordEntities(models []model.CollectionRecordModel) []*entity.CollectionRecord {
	records := make([]*entity.CollectionRecord, 0, len(models))
	for i := range models {
		records = append(records, models[i].ToEntity())
	}
	return records
}
