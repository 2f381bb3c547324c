// Package member contains member-related use cases.
package member

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/application/usecase/reconciliation"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/domain/valueobject"
)

// GetMemberLedgerInput represents the input for the member profile ledger.
// Zero Year/Month default to the current calendar month.
type GetMemberLedgerInput struct {
	CollectorID uuid.UUID
	MemberID    uuid.UUID
	Year        int
	Month       time.Month
}

// GetMemberLedgerOutput represents the output of the member profile ledger.
type GetMemberLedgerOutput struct {
	Year  int
	Month time.Month
	Model *valueobject.MemberRenderModel
}

// GetMemberLedgerUseCase renders one member's ledger for a calendar month.
type GetMemberLedgerUseCase struct {
	memberRepo      adapter.MemberRepository
	transactionRepo adapter.TransactionRepository
	saleRepo        adapter.SaleRepository
	aggregator      *reconciliation.Aggregator
}

// NewGetMemberLedgerUseCase creates a new GetMemberLedgerUseCase instance.
func NewGetMemberLedgerUseCase(
	memberRepo adapter.MemberRepository,
	transactionRepo adapter.TransactionRepository,
	saleRepo adapter.SaleRepository,
	aggregator *reconciliation.Aggregator,
) *GetMemberLedgerUseCase {
	return &GetMemberLedgerUseCase{
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		saleRepo:        saleRepo,
		aggregator:      aggregator,
	}
}

// Execute renders the member ledger. Profile rendering uses the exact
// date-matching mode: a figure appears only on the precise day it was
// collected.
func (uc *GetMemberLedgerUseCase) Execute(ctx context.Context, input GetMemberLedgerInput) (*GetMemberLedgerOutput, error) {
	member, err := uc.memberRepo.FindByID(ctx, input.MemberID)
	if err != nil {
		return nil, domainerror.ErrMemberNotFound
	}
	if member.CollectorID != input.CollectorID {
		return nil, domainerror.ErrMemberNotOwnedByCollector
	}

	year, month := input.Year, input.Month
	if year <= 0 || month < time.January || month > time.December {
		now := valueobject.ToCalendarDate(time.Now())
		year, month = now.Year, now.Month
	}

	records, err := uc.transactionRepo.FindByMember(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	rows, err := uc.saleRepo.FindRowsByMember(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	columns := reconciliation.ScheduleDates(member.ScheduleMode, member.ScheduleWeekday, year, month)
	model := uc.aggregator.Aggregate(reconciliation.AggregateInput{
		Member:  member,
		Rows:    rows,
		Records: records,
		Columns: columns,
		Mode:    valueobject.DateMatchLedger,
	})

	return &GetMemberLedgerOutput{
		Year:  year,
		Month: month,
		Model: model,
	}, nil
}
