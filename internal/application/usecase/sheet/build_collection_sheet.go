// Package sheet contains collection-sheet use cases.
package sheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/application/usecase/reconciliation"
	"github.com/field-console/backend/internal/domain/valueobject"
)

// BuildCollectionSheetInput represents the input for building the sheet.
// Zero Year/Month default to the current calendar month.
type BuildCollectionSheetInput struct {
	CollectorID uuid.UUID
	Year        int
	Month       time.Month
}

// BuildCollectionSheetOutput represents the output of building the sheet.
type BuildCollectionSheetOutput struct {
	Year        int
	Month       time.Month
	Members     []*valueobject.MemberRenderModel
	Diagnostics valueobject.PassDiagnostics
}

// BuildCollectionSheetUseCase renders the per-member, per-date collection
// grid for one calendar month of a collector's members.
type BuildCollectionSheetUseCase struct {
	memberRepo      adapter.MemberRepository
	transactionRepo adapter.TransactionRepository
	saleRepo        adapter.SaleRepository
	aggregator      *reconciliation.Aggregator
}

// NewBuildCollectionSheetUseCase creates a new BuildCollectionSheetUseCase instance.
func NewBuildCollectionSheetUseCase(
	memberRepo adapter.MemberRepository,
	transactionRepo adapter.TransactionRepository,
	saleRepo adapter.SaleRepository,
	aggregator *reconciliation.Aggregator,
) *BuildCollectionSheetUseCase {
	return &BuildCollectionSheetUseCase{
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		saleRepo:        saleRepo,
		aggregator:      aggregator,
	}
}

// Execute builds the collection sheet. Sheet rendering uses the tolerant
// date-matching mode so payments collected a few days off-schedule still
// land on the nearest sheet column.
func (uc *BuildCollectionSheetUseCase) Execute(ctx context.Context, input BuildCollectionSheetInput) (*BuildCollectionSheetOutput, error) {
	year, month := defaultPeriod(input.Year, input.Month)

	members, err := uc.memberRepo.FindByCollector(ctx, input.CollectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	output := &BuildCollectionSheetOutput{
		Year:    year,
		Month:   month,
		Members: make([]*valueobject.MemberRenderModel, 0, len(members)),
	}

	for _, member := range members {
		records, err := uc.transactionRepo.FindByMember(ctx, member.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load records for member %s: %w", member.ID, err)
		}
		rows, err := uc.saleRepo.FindRowsByMember(ctx, member.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load sales for member %s: %w", member.ID, err)
		}

		columns := reconciliation.ScheduleDates(member.ScheduleMode, member.ScheduleWeekday, year, month)
		model := uc.aggregator.Aggregate(reconciliation.AggregateInput{
			Member:  member,
			Rows:    rows,
			Records: records,
			Columns: columns,
			Mode:    valueobject.DateMatchSheet,
		})

		output.Members = append(output.Members, model)
		output.Diagnostics.Merge(model.Diagnostics)
	}

	return output, nil
}

// defaultPeriod fills missing year/month with the current calendar month.
func defaultPeriod(year int, month time.Month) (int, time.Month) {
	if year > 0 && month >= time.January && month <= time.December {
		return year, month
	}
	now := valueobject.ToCalendarDate(time.Now())
	return now.Year, now.Month
}
