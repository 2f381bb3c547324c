package persistence

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/field-console/backend/internal/integration/persistence/model"
)

// openTestDB opens a fresh in-memory sqlite database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.CollectorModel{},
		&model.RefreshTokenModel{},
		&model.MemberModel{},
		&model.CollectionRecordModel{},
		&model.ProductSaleModel{},
		&model.SaleItemModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedCollector(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	collectorID := uuid.New()
	now := time.Now().UTC()
	err := db.Create(&model.CollectorModel{
		ID:           collectorID,
		Email:        collectorID.String() + "@example.com",
		Name:         "Test Collector",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
	if err != nil {
		t.Fatalf("failed to seed collector: %v", err)
	}
	return collectorID
}

func seedMember(t *testing.T, db *gorm.DB, collectorID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	memberID := uuid.New()
	zero := decimal.Zero
	now := time.Now().UTC()
	err := db.Create(&model.MemberModel{
		ID:           memberID,
		CollectorID:  collectorID,
		Name:         name,
		TotalSavings: &zero,
		ScheduleMode: "daily",
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
	if err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	return memberID
}
