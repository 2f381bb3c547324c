// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordType is the coarse tag on a collection record. Unreliable alone;
// the note text is the primary classification signal.
type RecordType string

const (
	// RecordTypeRegular marks loan installment records.
	RecordTypeRegular RecordType = "regular"
	// RecordTypeExtra marks savings and ad-hoc records.
	RecordTypeExtra RecordType = "extra"
)

// RecordStatus is the collection state of a record.
type RecordStatus string

const (
	RecordStatusCollected RecordStatus = "collected"
	RecordStatusPartial   RecordStatus = "partial"
	RecordStatusPending   RecordStatus = "pending"
)

// CollectionRecord is one raw transaction record for a member. Records are
// created by collectors or auto-deduction and are read-only during
// reconciliation.
type CollectionRecord struct {
	ID       uuid.UUID
	MemberID uuid.UUID
	// Amount is the total amount of the record.
	Amount decimal.Decimal
	// PaidAmount is the actually-collected portion of a partial payment.
	// nil means unset, which is not the same as zero.
	PaidAmount *decimal.Decimal
	Type       RecordType
	Status     RecordStatus
	// Note is the free-text annotation carrying the classification signal,
	// e.g. "Product Loan: Rice Cooker - Installment 3/8".
	Note string
	// DistributionID links a payment to a specific product-sale
	// distribution. Authoritative when present.
	DistributionID *string
	CollectionDate *time.Time
	DueDate        *time.Time
	CreatedAt      time.Time
	// AutoDeducted marks payments taken automatically from savings.
	AutoDeducted bool
}

// NewCollectionRecord creates a collection record with a fresh ID.
func NewCollectionRecord(
	memberID uuid.UUID,
	amount decimal.Decimal,
	recordType RecordType,
	status RecordStatus,
	note string,
	distributionID *string,
	collectionDate *time.Time,
) *CollectionRecord {
	return &CollectionRecord{
		ID:             uuid.New(),
		MemberID:       memberID,
		Amount:         amount,
		Type:           recordType,
		Status:         status,
		Note:           note,
		DistributionID: distributionID,
		CollectionDate: collectionDate,
		CreatedAt:      time.Now().UTC(),
	}
}
