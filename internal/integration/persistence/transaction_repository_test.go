package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/integration/persistence/model"
)

func seedRecord(t *testing.T, db *gorm.DB, memberID uuid.UUID, recordType entity.RecordType, status entity.RecordStatus, note string, amount int64, day time.Time) uuid.UUID {
	t.Helper()

	value := decimal.NewFromInt(amount)
	recordID := uuid.New()
	err := db.Create(&model.CollectionRecordModel{
		ID:             recordID,
		MemberID:       memberID,
		Amount:         value,
		PaidAmount:     &value,
		Type:           string(recordType),
		Status:         string(status),
		Note:           note,
		CollectionDate: &day,
		CreatedAt:      time.Now().UTC(),
	}).Error
	if err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	return recordID
}

func TestTransactionRepository_FindByCollectorAndDay(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")
	otherCollectorID := seedCollector(t, db)
	otherMemberID := seedMember(t, db, otherCollectorID, "Karim")

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	seedRecord(t, db, memberID, entity.RecordTypeRegular, entity.RecordStatusCollected, "Installment", 300, day)
	seedRecord(t, db, memberID, entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Collection", 50, day.Add(10*time.Hour))
	seedRecord(t, db, memberID, entity.RecordTypeRegular, entity.RecordStatusCollected, "Installment", 300, day.AddDate(0, 0, 1))
	seedRecord(t, db, otherMemberID, entity.RecordTypeRegular, entity.RecordStatusCollected, "Installment", 300, day)

	records, err := repo.FindByCollectorAndDay(ctx, collectorID, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for the day, got %d", len(records))
	}
	for _, record := range records {
		if record.MemberID != memberID {
			t.Errorf("expected records for member %s, got %s", memberID, record.MemberID)
		}
	}
}

func TestTransactionRepository_GetDailyTotals(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	seedRecord(t, db, memberID, entity.RecordTypeRegular, entity.RecordStatusCollected, "Product Loan Installment", 300, day)
	seedRecord(t, db, memberID, entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Collection", 50, day)
	seedRecord(t, db, memberID, entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Withdrawal", 20, day)
	// Documenting record of a sale, excluded from the money sums
	seedRecord(t, db, memberID, entity.RecordTypeExtra, entity.RecordStatusCollected, "Product Sale: Rice Cooker | SaleID: S-1021", 3000, day)
	// Savings sub-component embedded in a sale-creation note: the marker
	// sits mid-note, still not a savings movement
	seedRecord(t, db, memberID, entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Collection - 100 - Product Sale: Rice Cooker", 100, day)
	// Pending records never count
	seedRecord(t, db, memberID, entity.RecordTypeRegular, entity.RecordStatusPending, "Installment", 300, day)

	totals, err := repo.GetDailyTotals(ctx, collectorID, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !totals.CollectionTotal.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected collection total 300, got %s", totals.CollectionTotal)
	}
	if !totals.SavingsInTotal.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected savings in 50, got %s", totals.SavingsInTotal)
	}
	if !totals.SavingsOutTotal.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected savings out 20, got %s", totals.SavingsOutTotal)
	}
	if totals.RecordCount != 5 {
		t.Errorf("expected 5 collected records, got %d", totals.RecordCount)
	}
}

func TestTransactionRepository_CreateAndFindByMember(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	record := entity.NewCollectionRecord(memberID, decimal.NewFromInt(300), entity.RecordTypeRegular, entity.RecordStatusCollected, "Installment", nil, &day)
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("failed to create record: %v", err)
	}

	records, err := repo.FindByMember(ctx, memberID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Note != "Installment" {
		t.Errorf("expected note Installment, got %s", records[0].Note)
	}
}
