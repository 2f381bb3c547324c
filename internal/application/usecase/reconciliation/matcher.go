// Package reconciliation implements the collection-reconciliation engine.
package reconciliation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/domain/valueobject"
)

// Matcher decides whether a collection record belongs to a product-sale row.
// The layered fallback policy runs strongest signal first: distribution-ID
// equality, then ID containment, then product-name text, then amount
// tolerance. The caller (the aggregator) drives layer precedence across
// rows.
type Matcher struct {
	config valueobject.AttributionConfig
}

// NewMatcher creates a matcher with the given attribution policy.
func NewMatcher(config valueobject.AttributionConfig) *Matcher {
	return &Matcher{config: config}
}

// MatchesDistributionID reports whether the record's distribution ID exactly
// equals one of the row's distribution IDs.
func (m *Matcher) MatchesDistributionID(record *entity.CollectionRecord, row *entity.SaleRow) bool {
	if record.DistributionID == nil || *record.DistributionID == "" {
		return false
	}
	for _, id := range row.DistributionIDs() {
		if id == *record.DistributionID {
			return true
		}
	}
	return false
}

// MatchesIDContainment is the legacy-data fallback: one identifier contains
// the other, or the DIST-{saleID}-{n} pattern of the record's distribution
// ID resolves to the row's sale transaction ID.
func (m *Matcher) MatchesIDContainment(record *entity.CollectionRecord, row *entity.SaleRow) bool {
	if record.DistributionID == nil || *record.DistributionID == "" {
		return false
	}
	recordID := *record.DistributionID

	candidates := append(row.DistributionIDs(), row.SaleTransactionID)
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if strings.Contains(recordID, id) || strings.Contains(id, recordID) {
			return true
		}
	}

	if saleID, ok := extractSaleID(recordID); ok && saleID == row.SaleTransactionID {
		return true
	}
	return false
}

// extractSaleID pulls the sale transaction ID out of a DIST-{saleID}-{n}
// distribution ID.
func extractSaleID(distributionID string) (string, bool) {
	rest, found := strings.CutPrefix(distributionID, "DIST-")
	if !found {
		return "", false
	}
	idx := strings.LastIndex(rest, "-")
	if idx <= 0 {
		return "", false
	}
	return rest[:idx], true
}

// MatchesProductName reports whether the row's cleaned product name, or a
// long-enough keyword of it, appears in the record note.
func (m *Matcher) MatchesProductName(record *entity.CollectionRecord, row *entity.SaleRow) bool {
	note := strings.ToLower(record.Note)
	if note == "" {
		return false
	}
	for _, name := range row.ProductNames() {
		cleaned := cleanProductName(name)
		if cleaned == "" {
			continue
		}
		if strings.Contains(note, cleaned) {
			return true
		}
		for _, keyword := range strings.Fields(cleaned) {
			if len([]rune(keyword)) >= m.config.MinNameKeywordLength && strings.Contains(note, keyword) {
				return true
			}
		}
	}
	return false
}

// cleanProductName lowercases the text before any parenthesis and trims it.
func cleanProductName(name string) string {
	if idx := strings.Index(name, "("); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(strings.ToLower(name))
}

// MatchesAmountTolerance is the last-resort match for loan payments:
// the effective amount is close enough to the row's expected installment.
func (m *Matcher) MatchesAmountTolerance(effectiveAmount decimal.Decimal, row *entity.SaleRow) bool {
	return m.config.AmountWithinTolerance(effectiveAmount, row.ExpectedInstallment())
}

// MatchesSiblingAmount reports whether the effective amount falls within
// tolerance of any sibling row's expected installment. Used when a record
// fails the direct tolerance test and the tested row is the member's only
// active row, where distribution IDs are typically missing entirely.
func (m *Matcher) MatchesSiblingAmount(effectiveAmount decimal.Decimal, siblings []*entity.SaleRow) bool {
	for _, sibling := range siblings {
		if m.config.AmountWithinTolerance(effectiveAmount, sibling.ExpectedInstallment()) {
			return true
		}
	}
	return false
}

// CountAmountMatches counts how many rows accept the amount under the
// tolerance rule. Two or more means the attribution is ambiguous and is
// resolved by row order, logged as a diagnostic.
func (m *Matcher) CountAmountMatches(effectiveAmount decimal.Decimal, rows []*entity.SaleRow) int {
	count := 0
	for _, row := range rows {
		if m.MatchesAmountTolerance(effectiveAmount, row) {
			count++
		}
	}
	return count
}

// HasIdentityHint reports whether the record carries any signal tying it to
// a specific row: a distribution ID or a product-name mention. Savings
// records without a hint fall back to the member's first active row.
func (m *Matcher) HasIdentityHint(record *entity.CollectionRecord, rows []*entity.SaleRow) bool {
	if record.DistributionID != nil && *record.DistributionID != "" {
		return true
	}
	for _, row := range rows {
		if m.MatchesProductName(record, row) {
			return true
		}
	}
	return false
}

// DateGateOK applies the date gate for the given mode: a tolerance window
// for the collection sheet, exact calendar-day equality for the member
// ledger. The gate runs before identity matching, never instead of it.
func (m *Matcher) DateGateOK(effectiveDate, columnDate valueobject.CalendarDate, mode valueobject.DateMatchMode) bool {
	return effectiveDate.WithinDays(columnDate, m.config.DateToleranceDays(mode))
}
