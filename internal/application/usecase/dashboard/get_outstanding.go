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

// GetOutstandingInput represents the input for the outstanding-credit summary.
type GetOutstandingInput struct {
	CollectorID uuid.UUID
}

// GetOutstandingOutput represents the outstanding-credit summary.
type GetOutstandingOutput struct {
	TotalSold        decimal.Decimal `json:"total_sold"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	ActiveSales      int64           `json:"active_sales"`
}

// GetOutstandingUseCase handles the outstanding-credit dashboard figure.
type GetOutstandingUseCase struct {
	saleRepo     adapter.SaleRepository
	summaryCache adapter.SummaryCache
	cacheTTL     time.Duration
}

// NewGetOutstandingUseCase creates a new GetOutstandingUseCase instance.
func NewGetOutstandingUseCase(
	saleRepo adapter.SaleRepository,
	summaryCache adapter.SummaryCache,
	cacheTTL time.Duration,
) *GetOutstandingUseCase {
	return &GetOutstandingUseCase{
		saleRepo:     saleRepo,
		summaryCache: summaryCache,
		cacheTTL:     cacheTTL,
	}
}

// Execute returns the collector's pending credit position.
func (uc *GetOutstandingUseCase) Execute(ctx context.Context, input GetOutstandingInput) (*GetOutstandingOutput, error) {
	key := outstandingKey(input.CollectorID)
	if cached, err := uc.summaryCache.Get(ctx, key); err == nil && cached != nil {
		var output GetOutstandingOutput
		if err := json.Unmarshal(cached, &output); err == nil {
			return &output, nil
		}
	}

	totals, err := uc.saleRepo.GetOutstandingTotals(ctx, input.CollectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate outstanding totals: %w", err)
	}

	output := &GetOutstandingOutput{
		TotalSold:        totals.TotalSold,
		TotalCollected:   totals.TotalCollected,
		TotalOutstanding: totals.TotalOutstanding,
		ActiveSales:      totals.ActiveSales,
	}

	if payload, err := json.Marshal(output); err == nil {
		if err := uc.summaryCache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
			slog.Warn("failed to cache outstanding summary", "key", key, "error", err)
		}
	}
	return output, nil
}
