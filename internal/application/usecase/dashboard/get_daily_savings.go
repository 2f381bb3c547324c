// Package dashboard contains dashboard summary use cases.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/application/usecase/reconciliation"
	"github.com/field-console/backend/internal/domain/valueobject"
)

// GetDailySavingsInput represents the input for the daily savings summary.
// A zero Date defaults to today.
type GetDailySavingsInput struct {
	CollectorID uuid.UUID
	Date        time.Time
}

// MemberSavingsLine is one member's savings movement for the day.
type MemberSavingsLine struct {
	MemberID   uuid.UUID       `json:"member_id"`
	Deposits   decimal.Decimal `json:"deposits"`
	Withdrawal decimal.Decimal `json:"withdrawals"`
}

// GetDailySavingsOutput represents the daily savings summary.
type GetDailySavingsOutput struct {
	Date        string              `json:"date"`
	DepositsIn  decimal.Decimal     `json:"deposits_in"`
	Withdrawals decimal.Decimal     `json:"withdrawals"`
	Net         decimal.Decimal     `json:"net"`
	ByMember    []MemberSavingsLine `json:"by_member"`
}

// GetDailySavingsUseCase handles the daily savings dashboard figure. Records
// are classified by note text, the same signal the reconciliation pass uses,
// so the dashboard and the sheet never disagree on what counts as savings.
type GetDailySavingsUseCase struct {
	transactionRepo adapter.TransactionRepository
	classifier      *reconciliation.Classifier
	summaryCache    adapter.SummaryCache
	cacheTTL        time.Duration
}

// NewGetDailySavingsUseCase creates a new GetDailySavingsUseCase instance.
func NewGetDailySavingsUseCase(
	transactionRepo adapter.TransactionRepository,
	classifier *reconciliation.Classifier,
	summaryCache adapter.SummaryCache,
	cacheTTL time.Duration,
) *GetDailySavingsUseCase {
	return &GetDailySavingsUseCase{
		transactionRepo: transactionRepo,
		classifier:      classifier,
		summaryCache:    summaryCache,
		cacheTTL:        cacheTTL,
	}
}

// Execute returns the collector's savings movements for one day.
func (uc *GetDailySavingsUseCase) Execute(ctx context.Context, input GetDailySavingsInput) (*GetDailySavingsOutput, error) {
	day := input.Date
	if day.IsZero() {
		day = time.Now().UTC()
	}

	key := dailySavingsKey(input.CollectorID, day)
	if cached, err := uc.summaryCache.Get(ctx, key); err == nil && cached != nil {
		var output GetDailySavingsOutput
		if err := json.Unmarshal(cached, &output); err == nil {
			return &output, nil
		}
	}

	records, err := uc.transactionRepo.FindByCollectorAndDay(ctx, input.CollectorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	output := &GetDailySavingsOutput{
		Date:        day.UTC().Format("2006-01-02"),
		DepositsIn:  decimal.Zero,
		Withdrawals: decimal.Zero,
	}
	byMember := make(map[uuid.UUID]*MemberSavingsLine)

	for _, record := range records {
		kind := uc.classifier.Classify(record)
		if kind != valueobject.KindSavingsDeposit && kind != valueobject.KindSavingsWithdrawal {
			continue
		}
		amount := uc.classifier.EffectiveAmount(record)
		if amount.IsNegative() {
			continue
		}

		line, ok := byMember[record.MemberID]
		if !ok {
			line = &MemberSavingsLine{
				MemberID:   record.MemberID,
				Deposits:   decimal.Zero,
				Withdrawal: decimal.Zero,
			}
			byMember[record.MemberID] = line
		}

		if kind == valueobject.KindSavingsDeposit {
			output.DepositsIn = output.DepositsIn.Add(amount)
			line.Deposits = line.Deposits.Add(amount)
		} else {
			output.Withdrawals = output.Withdrawals.Add(amount)
			line.Withdrawal = line.Withdrawal.Add(amount)
		}
	}

	output.ByMember = make([]MemberSavingsLine, 0, len(byMember))
	for _, line := range byMember {
		output.ByMember = append(output.ByMember, *line)
	}
	sort.Slice(output.ByMember, func(i, j int) bool {
		return output.ByMember[i].MemberID.String() < output.ByMember[j].MemberID.String()
	})
	output.Net = output.DepositsIn.Sub(output.Withdrawals)

	if payload, err := json.Marshal(output); err == nil {
		if err := uc.summaryCache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
			slog.Warn("failed to cache daily savings summary", "key", key, "error", err)
		}
	}
	return output, nil
}
