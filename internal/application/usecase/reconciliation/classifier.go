// Package reconciliation implements the collection-reconciliation engine:
// classifying raw collection records, attributing them to product-sale rows
// and folding them into render models.
package reconciliation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/domain/valueobject"
)

// Classifier decides what a raw collection record represents. The note text
// is the primary signal; rules are evaluated in order and the first match
// wins, because some notes satisfy multiple naive patterns.
type Classifier struct {
	config valueobject.ClassifierConfig
}

// NewClassifier creates a classifier with the given phrase configuration.
func NewClassifier(config valueobject.ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

// Classify returns the kind of a record. Pure function of the record's
// fields.
func (c *Classifier) Classify(record *entity.CollectionRecord) valueobject.RecordKind {
	note := record.Note
	isExtra := record.Type == entity.RecordTypeExtra

	hasProductSale := strings.Contains(note, c.config.ProductSalePhrase)
	hasSavings := strings.Contains(note, c.config.SavingsPhrase)

	// Rule 1: the record documenting the sale itself, never a payment.
	if hasProductSale {
		if strings.Contains(note, c.config.SaleIDMarker) || (isExtra && !hasSavings) {
			return valueobject.KindProductSaleCreation
		}
	}

	// Rule 2: a savings sub-component embedded inside a sale-creation note.
	// Must not be double-read as a standalone deposit.
	if isExtra && hasSavings && hasProductSale {
		return valueobject.KindIgnorable
	}

	// Rule 3: registration-time opening balance.
	if strings.Contains(note, c.config.InitialSavingsPhrase) {
		return valueobject.KindSavingsDeposit
	}

	// Rule 4: withdrawal from the savings ledger.
	if isExtra && strings.Contains(note, c.config.WithdrawalPhrase) {
		return valueobject.KindSavingsWithdrawal
	}

	// Rule 5: plain savings deposit, English or locale keyword.
	if isExtra && (hasSavings || c.hasLocaleSavingsPhrase(note)) {
		if !strings.Contains(note, "Product") && !strings.Contains(note, "Loan") &&
			!strings.Contains(note, "Withdrawal") {
			return valueobject.KindSavingsDeposit
		}
	}

	// Rule 6: loan installment payment.
	if record.Type == entity.RecordTypeRegular &&
		(record.Status == entity.RecordStatusCollected || record.Status == entity.RecordStatusPartial) {
		for _, phrase := range c.config.LoanPaymentPhrases {
			if strings.Contains(note, phrase) {
				return valueobject.KindLoanInstallmentPayment
			}
		}
	}

	return valueobject.KindIgnorable
}

func (c *Classifier) hasLocaleSavingsPhrase(note string) bool {
	for _, phrase := range c.config.SavingsLocalePhrases {
		if strings.Contains(note, phrase) {
			return true
		}
	}
	return false
}

// EffectiveDate selects the date a record is matched on. Pending loan
// payments sit on their scheduled due date; everything collected sits on the
// actual collection date, falling back to the creation timestamp.
func (c *Classifier) EffectiveDate(record *entity.CollectionRecord, kind valueobject.RecordKind) valueobject.CalendarDate {
	if record.AutoDeducted {
		return dateOrCreated(record.CollectionDate, record.CreatedAt)
	}

	switch kind {
	case valueobject.KindLoanInstallmentPayment:
		if record.Status == entity.RecordStatusPending {
			if record.DueDate == nil {
				return valueobject.CalendarDate{}
			}
			return valueobject.ToCalendarDate(*record.DueDate)
		}
		return dateOrCreated(record.CollectionDate, record.CreatedAt)
	case valueobject.KindSavingsDeposit, valueobject.KindSavingsWithdrawal:
		return dateOrCreated(record.CollectionDate, record.CreatedAt)
	default:
		return dateOrCreated(record.CollectionDate, record.CreatedAt)
	}
}

// EffectiveAmount selects the amount a record contributes: the
// actually-collected portion when present and positive, the full amount
// otherwise.
func (c *Classifier) EffectiveAmount(record *entity.CollectionRecord) decimal.Decimal {
	if record.PaidAmount != nil && record.PaidAmount.IsPositive() {
		return *record.PaidAmount
	}
	return record.Amount
}

func dateOrCreated(date *time.Time, created time.Time) valueobject.CalendarDate {
	if date != nil {
		return valueobject.ToCalendarDate(*date)
	}
	return valueobject.ToCalendarDate(created)
}
