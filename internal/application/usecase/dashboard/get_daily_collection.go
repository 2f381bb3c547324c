// Package dashboard contains dashboard summary use cases.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/application/adapter"
)

// GetDailyCollectionInput represents the input for the daily collection
// summary. A zero Date defaults to today.
type GetDailyCollectionInput struct {
	CollectorID uuid.UUID
	Date        time.Time
}

// GetDailyCollectionOutput represents the daily collection summary.
type GetDailyCollectionOutput struct {
	Date            string          `json:"date"`
	CollectionTotal decimal.Decimal `json:"collection_total"`
	SavingsInTotal  decimal.Decimal `json:"savings_in_total"`
	SavingsOutTotal decimal.Decimal `json:"savings_out_total"`
	RecordCount     int64           `json:"record_count"`
}

// GetDailyCollectionUseCase handles the daily collection dashboard figure.
type GetDailyCollectionUseCase struct {
	transactionRepo adapter.TransactionRepository
	summaryCache    adapter.SummaryCache
	cacheTTL        time.Duration
}

// NewGetDailyCollectionUseCase creates a new GetDailyCollectionUseCase instance.
func NewGetDailyCollectionUseCase(
	transactionRepo adapter.TransactionRepository,
	summaryCache adapter.SummaryCache,
	cacheTTL time.Duration,
) *GetDailyCollectionUseCase {
	return &GetDailyCollectionUseCase{
		transactionRepo: transactionRepo,
		summaryCache:    summaryCache,
		cacheTTL:        cacheTTL,
	}
}

// Execute returns the collector's aggregated figures for one day, served
// from cache when fresh.
func (uc *GetDailyCollectionUseCase) Execute(ctx context.Context, input GetDailyCollectionInput) (*GetDailyCollectionOutput, error) {
	day := input.Date
	if day.IsZero() {
		day = time.Now().UTC()
	}

	key := dailyCollectionKey(input.CollectorID, day)
	if cached, err := uc.summaryCache.Get(ctx, key); err == nil && cached != nil {
		var output GetDailyCollectionOutput
		if err := json.Unmarshal(cached, &output); err == nil {
			return &output, nil
		}
	}

	totals, err := uc.transactionRepo.GetDailyTotals(ctx, input.CollectorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily totals: %w", err)
	}

	output := &GetDailyCollectionOutput{
		Date:            day.UTC().Format("2006-01-02"),
		CollectionTotal: totals.CollectionTotal,
		SavingsInTotal:  totals.SavingsInTotal,
		SavingsOutTotal: totals.SavingsOutTotal,
		RecordCount:     totals.RecordCount,
	}

	if payload, err := json.Marshal(output); err == nil {
		if err := uc.summaryCache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
			slog.Warn("failed to cache daily collection summary", "key", key, "error", err)
		}
	}
	return output, nil
}
