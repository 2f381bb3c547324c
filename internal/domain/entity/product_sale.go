// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/valueobject"
)

// InstallmentFrequency is how often installments of a product entry fall due.
type InstallmentFrequency string

const (
	FrequencyDaily   InstallmentFrequency = "daily"
	FrequencyWeekly  InstallmentFrequency = "weekly"
	FrequencyMonthly InstallmentFrequency = "monthly"
)

// ProductEntry is one product within a sale. PaidAmount is accumulated by
// the aggregation engine during a render pass; the stored value is a
// starting point only.
type ProductEntry struct {
	ProductName          string
	TotalAmount          decimal.Decimal
	TotalInstallments    int
	InstallmentFrequency InstallmentFrequency
	DeliveryDate         *time.Time
	// DistributionID is nil for legacy sales that predate distribution
	// tracking.
	DistributionID *string
	PaidAmount     decimal.Decimal
}

// PendingAmount is the uncollected remainder, never negative.
func (p *ProductEntry) PendingAmount() decimal.Decimal {
	pending := p.TotalAmount.Sub(p.PaidAmount)
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// SaleRow is one or more product entries sold together in a single checkout,
// grouped by SaleTransactionID. Rows are constructed transiently per render
// pass from the member's sale records.
type SaleRow struct {
	SaleTransactionID string
	// Dofa is the per-sale display ordering sequence number.
	Dofa     int
	SaleDate time.Time
	Products []*ProductEntry
}

// TotalAmount sums the product totals of the row.
func (r *SaleRow) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Products {
		total = total.Add(p.TotalAmount)
	}
	return total
}

// PaidAmount sums the accumulated paid amounts of the row.
func (r *SaleRow) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Products {
		total = total.Add(p.PaidAmount)
	}
	return total
}

// TotalInstallments is the installment count of the row. Products bundled in
// one sale share a payment cadence, so the largest entry count governs.
func (r *SaleRow) TotalInstallments() int {
	max := 0
	for _, p := range r.Products {
		if p.TotalInstallments > max {
			max = p.TotalInstallments
		}
	}
	return max
}

// ExpectedInstallment is the scheduled per-installment amount of the row,
// rounded to whole currency units.
func (r *SaleRow) ExpectedInstallment() decimal.Decimal {
	n := r.TotalInstallments()
	if n <= 0 {
		return decimal.Zero
	}
	return r.TotalAmount().Div(decimal.NewFromInt(int64(n))).Round(0)
}

// DistributionIDs returns the non-nil distribution IDs of the row's entries.
func (r *SaleRow) DistributionIDs() []string {
	var ids []string
	for _, p := range r.Products {
		if p.DistributionID != nil && *p.DistributionID != "" {
			ids = append(ids, *p.DistributionID)
		}
	}
	return ids
}

// ProductNames returns the product names of the row in entry order.
func (r *SaleRow) ProductNames() []string {
	names := make([]string, 0, len(r.Products))
	for _, p := range r.Products {
		names = append(names, p.ProductName)
	}
	return names
}

// DeliveryDate returns the earliest known delivery date of the row's
// entries, or the invalid date when none is known.
func (r *SaleRow) DeliveryDate() valueobject.CalendarDate {
	earliest := valueobject.CalendarDate{}
	for _, p := range r.Products {
		if p.DeliveryDate == nil {
			continue
		}
		d := valueobject.ToCalendarDate(*p.DeliveryDate)
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	return earliest
}

// FullyPaid reports whether every currency unit of the row is collected.
func (r *SaleRow) FullyPaid() bool {
	return r.PaidAmount().GreaterThanOrEqual(r.TotalAmount()) && r.TotalAmount().IsPositive()
}

// NewDistributionID builds the canonical distribution ID for the n-th entry
// of a sale.
func NewDistributionID(saleTransactionID string, n int) string {
	return fmt.Sprintf("DIST-%s-%d", saleTransactionID, n)
}
