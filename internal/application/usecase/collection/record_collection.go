// Package collection contains collection-recording use cases.
package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
)

// Kind is the collector-facing type of a submitted collection.
type Kind string

const (
	KindInstallment       Kind = "installment"
	KindSavingsDeposit    Kind = "savings_deposit"
	KindSavingsWithdrawal Kind = "savings_withdrawal"
)

// Default note texts for savings records submitted without one. These carry
// the classification signal, so they must stay aligned with the classifier
// phrases.
const (
	defaultDepositNote    = "Savings Collection"
	defaultWithdrawalNote = "Savings Withdrawal"
)

// RecordCollectionInput represents the input for recording a collection.
type RecordCollectionInput struct {
	CollectorID    uuid.UUID
	MemberID       uuid.UUID
	Amount         decimal.Decimal
	Kind           Kind
	Note           string
	DistributionID *string
	CollectionDate *time.Time
}

// RecordCollectionOutput represents the output of recording a collection.
type RecordCollectionOutput struct {
	Record *entity.CollectionRecord
}

// RecordCollectionUseCase handles recording installment and savings
// collections.
type RecordCollectionUseCase struct {
	memberRepo      adapter.MemberRepository
	transactionRepo adapter.TransactionRepository
	summaryCache    adapter.SummaryCache
}

// NewRecordCollectionUseCase creates a new RecordCollectionUseCase instance.
func NewRecordCollectionUseCase(
	memberRepo adapter.MemberRepository,
	transactionRepo adapter.TransactionRepository,
	summaryCache adapter.SummaryCache,
) *RecordCollectionUseCase {
	return &RecordCollectionUseCase{
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		summaryCache:    summaryCache,
	}
}

// Execute records one collection for a member. Savings kinds also move the
// member's running savings balance; installments do not touch it.
func (uc *RecordCollectionUseCase) Execute(ctx context.Context, input RecordCollectionInput) (*RecordCollectionOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.ErrInvalidCollectionAmount
	}

	owned, err := uc.memberRepo.ExistsByIDAndCollector(ctx, input.MemberID, input.CollectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member ownership: %w", err)
	}
	if !owned {
		return nil, domainerror.ErrMemberNotOwnedByCollector
	}

	recordType, note, err := resolveRecord(input.Kind, input.Note)
	if err != nil {
		return nil, err
	}

	collectionDate := input.CollectionDate
	if collectionDate == nil {
		now := time.Now().UTC()
		collectionDate = &now
	}

	record := entity.NewCollectionRecord(
		input.MemberID,
		input.Amount,
		recordType,
		entity.RecordStatusCollected,
		note,
		input.DistributionID,
		collectionDate,
	)

	if err := uc.transactionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create collection record: %w", err)
	}

	switch input.Kind {
	case KindSavingsDeposit:
		err = uc.memberRepo.AdjustTotalSavings(ctx, input.MemberID, input.Amount)
	case KindSavingsWithdrawal:
		err = uc.memberRepo.AdjustTotalSavings(ctx, input.MemberID, input.Amount.Neg())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust savings balance: %w", err)
	}

	uc.invalidateDashboards(ctx, input.CollectorID, *collectionDate)

	return &RecordCollectionOutput{Record: record}, nil
}

// resolveRecord maps the submitted kind onto the stored record shape.
func resolveRecord(kind Kind, note string) (entity.RecordType, string, error) {
	switch kind {
	case KindInstallment:
		return entity.RecordTypeRegular, note, nil
	case KindSavingsDeposit:
		if note == "" {
			note = defaultDepositNote
		}
		return entity.RecordTypeExtra, note, nil
	case KindSavingsWithdrawal:
		if note == "" {
			note = defaultWithdrawalNote
		}
		return entity.RecordTypeExtra, note, nil
	default:
		return "", "", domainerror.ErrInvalidCollectionType
	}
}

// invalidateDashboards drops the cached dashboard summaries touched by a new
// record. Cache errors are ignored; stale summaries expire on their own.
func (uc *RecordCollectionUseCase) invalidateDashboards(ctx context.Context, collectorID uuid.UUID, day time.Time) {
	date := day.UTC().Format("2006-01-02")
	_ = uc.summaryCache.Invalidate(ctx,
		fmt.Sprintf("dashboard:daily-collection:%s:%s", collectorID, date),
		fmt.Sprintf("dashboard:daily-savings:%s:%s", collectorID, date),
		fmt.Sprintf("dashboard:outstanding:%s", collectorID),
	)
}
