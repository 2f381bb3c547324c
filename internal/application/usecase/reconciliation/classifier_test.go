// Package reconciliation implements the collection-reconciliation engine.
package reconciliation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/domain/valueobject"
)

func newRecord(recordType entity.RecordType, status entity.RecordStatus, note string, amount int64) *entity.CollectionRecord {
	return &entity.CollectionRecord{
		ID:        uuid.New(),
		MemberID:  uuid.New(),
		Amount:    decimal.NewFromInt(amount),
		Type:      recordType,
		Status:    status,
		Note:      note,
		CreatedAt: time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(valueobject.DefaultClassifierConfig())

	tests := []struct {
		name   string
		record *entity.CollectionRecord
		want   valueobject.RecordKind
	}{
		{
			name:   "sale creation record with sale id marker",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "Product Sale: Rice Cooker - SaleID: S-1021", 1600),
			want:   valueobject.KindProductSaleCreation,
		},
		{
			name:   "sale creation record without marker but extra type",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "Product Sale: Sewing Machine", 4000),
			want:   valueobject.KindProductSaleCreation,
		},
		{
			name:   "savings embedded in sale creation note is ignorable",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Collection - ৳100 - Product Sale: Rice", 100),
			want:   valueobject.KindIgnorable,
		},
		{
			name:   "initial savings is a deposit",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "Initial Savings on registration", 50),
			want:   valueobject.KindSavingsDeposit,
		},
		{
			name:   "savings withdrawal",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Withdrawal - member request", 300),
			want:   valueobject.KindSavingsWithdrawal,
		},
		{
			name:   "plain savings collection",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Collection - weekly", 100),
			want:   valueobject.KindSavingsDeposit,
		},
		{
			name:   "locale savings keyword",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "সঞ্চয় সংগ্রহ", 100),
			want:   valueobject.KindSavingsDeposit,
		},
		{
			name:   "savings phrase mentioning loan is not a deposit",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Collection adjusted against Loan", 100),
			want:   valueobject.KindIgnorable,
		},
		{
			name:   "collected loan installment",
			record: newRecord(entity.RecordTypeRegular, entity.RecordStatusCollected, "Product Loan: Rice Cooker - Installment 3/8", 200),
			want:   valueobject.KindLoanInstallmentPayment,
		},
		{
			name:   "partial loan payment",
			record: newRecord(entity.RecordTypeRegular, entity.RecordStatusPartial, "Partial Payment received", 120),
			want:   valueobject.KindLoanInstallmentPayment,
		},
		{
			name:   "pending regular record without payment phrase",
			record: newRecord(entity.RecordTypeRegular, entity.RecordStatusPending, "scheduled visit", 200),
			want:   valueobject.KindIgnorable,
		},
		{
			name:   "unrelated extra record",
			record: newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "misc adjustment", 10),
			want:   valueobject.KindIgnorable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.record); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifier_ClassifyIsIdempotent(t *testing.T) {
	classifier := NewClassifier(valueobject.DefaultClassifierConfig())
	record := newRecord(entity.RecordTypeRegular, entity.RecordStatusCollected, "Product Loan: Fan - Installment 1/10", 150)

	first := classifier.Classify(record)
	second := classifier.Classify(record)
	if first != second {
		t.Errorf("Classify not idempotent: first %v, second %v", first, second)
	}
}

func TestClassifier_EffectiveDate(t *testing.T) {
	classifier := NewClassifier(valueobject.DefaultClassifierConfig())

	collection := time.Date(2024, 11, 10, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)

	t.Run("pending loan payment uses due date", func(t *testing.T) {
		record := newRecord(entity.RecordTypeRegular, entity.RecordStatusPending, "Installment", 200)
		record.DueDate = &due
		record.CollectionDate = &collection

		got := classifier.EffectiveDate(record, valueobject.KindLoanInstallmentPayment)
		want := valueobject.ToCalendarDate(due)
		if !got.Equal(want) {
			t.Errorf("EffectiveDate() = %v, want %v", got, want)
		}
	})

	t.Run("pending loan payment without due date is invalid", func(t *testing.T) {
		record := newRecord(entity.RecordTypeRegular, entity.RecordStatusPending, "Installment", 200)

		got := classifier.EffectiveDate(record, valueobject.KindLoanInstallmentPayment)
		if !got.IsZero() {
			t.Errorf("expected invalid date, got %v", got)
		}
	})

	t.Run("collected loan payment uses collection date", func(t *testing.T) {
		record := newRecord(entity.RecordTypeRegular, entity.RecordStatusCollected, "Installment", 200)
		record.CollectionDate = &collection
		record.DueDate = &due

		got := classifier.EffectiveDate(record, valueobject.KindLoanInstallmentPayment)
		want := valueobject.ToCalendarDate(collection)
		if !got.Equal(want) {
			t.Errorf("EffectiveDate() = %v, want %v", got, want)
		}
	})

	t.Run("collected loan payment falls back to created at", func(t *testing.T) {
		record := newRecord(entity.RecordTypeRegular, entity.RecordStatusCollected, "Installment", 200)

		got := classifier.EffectiveDate(record, valueobject.KindLoanInstallmentPayment)
		want := valueobject.ToCalendarDate(record.CreatedAt)
		if !got.Equal(want) {
			t.Errorf("EffectiveDate() = %v, want %v", got, want)
		}
	})

	t.Run("savings always use collection date", func(t *testing.T) {
		record := newRecord(entity.RecordTypeExtra, entity.RecordStatusCollected, "Savings Collection", 100)
		record.CollectionDate = &collection
		record.DueDate = &due

		got := classifier.EffectiveDate(record, valueobject.KindSavingsDeposit)
		want := valueobject.ToCalendarDate(collection)
		if !got.Equal(want) {
			t.Errorf("EffectiveDate() = %v, want %v", got, want)
		}
	})

	t.Run("auto deducted pending payment still uses collection date", func(t *testing.T) {
		record := newRecord(entity.RecordTypeRegular, entity.RecordStatusPending, "Installment", 200)
		record.AutoDeducted = true
		record.CollectionDate = &collection
		record.DueDate = &due

		got := classifier.EffectiveDate(record, valueobject.KindLoanInstallmentPayment)
		want := valueobject.ToCalendarDate(collection)
		if !got.Equal(want) {
			t.Errorf("EffectiveDate() = %v, want %v", got, want)
		}
	})
}

func TestClassifier_EffectiveAmount(t *testing.T) {
	classifier := NewClassifier(valueobject.DefaultClassifierConfig())

	t.Run("paid amount wins when positive", func(t *testing.T) {
		record := newRecord(entity.RecordTypeRegular, entity.RecordStatusPartial, "Partial Payment", 200)
		paid := decimal.NewFromInt(120)
		record.PaidAmount = &paid

		if got := classifier.EffectiveAmount(record); !got.Equal(paid) {
			t.Errorf("EffectiveAmount() = %v, want %v", got, paid)
		}
	})

	t.Run("unset paid amount falls back to amount", func(t *testing.T) {
		record := newRecord(entity.RecordTypeRegular, entity.RecordStatusCollected, "Installment", 200)

		if got := classifier.EffectiveAmount(record); !got.Equal(record.Amount) {
			t.Errorf("EffectiveAmount() = %v, want %v", got, record.Amount)
		}
	})

	t.Run("zero paid amount is treated as unset", func(t *testing.T) {
		record := newRecord(entity.RecordTypeRegular, entity.RecordStatusCollected, "Installment", 200)
		zero := decimal.Zero
		record.PaidAmount = &zero

		if got := classifier.EffectiveAmount(record); !got.Equal(record.Amount) {
			t.Errorf("EffectiveAmount() = %v, want %v", got, record.Amount)
		}
	})
}
