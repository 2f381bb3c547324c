// Package valueobject contains domain value objects for the Field Console system.
package valueobject

import "github.com/shopspring/decimal"

// DateMatchMode selects the date gate applied before identity matching.
type DateMatchMode string

const (
	// DateMatchSheet allows a tolerance window around the column date,
	// used by the collection sheet view.
	DateMatchSheet DateMatchMode = "sheet"
	// DateMatchLedger requires exact calendar-day equality, used by the
	// member profile ledger view.
	DateMatchLedger DateMatchMode = "ledger"
)

// MatchBasis records which attribution layer accepted a record. Exposed for
// diagnostics and ambiguity logging, not for end users.
type MatchBasis string

const (
	MatchBasisNone           MatchBasis = ""
	MatchBasisDistributionID MatchBasis = "distribution_id"
	MatchBasisIDContainment  MatchBasis = "id_containment"
	MatchBasisProductName    MatchBasis = "product_name"
	MatchBasisAmount         MatchBasis = "amount_tolerance"
	MatchBasisFirstRow       MatchBasis = "first_row_fallback"
)

// AttributionConfig holds the policy parameters of the attribution matcher.
// The tolerance values are heuristics, kept configurable so boundary
// behavior can be tuned without code changes.
type AttributionConfig struct {
	// ToleranceFraction is the fraction of the expected installment amount
	// accepted as deviation by the amount-tolerance fallback.
	ToleranceFraction decimal.Decimal // 0.5 = 50%
	// ToleranceFloor is the minimum absolute deviation accepted, in
	// currency units, regardless of the fraction.
	ToleranceFloor decimal.Decimal // ৳200
	// SheetDateToleranceDays is the day window for DateMatchSheet.
	SheetDateToleranceDays int
	// MinNameKeywordLength is the shortest product-name keyword considered
	// by the product-name match.
	MinNameKeywordLength int
}

// DefaultAttributionConfig returns the default attribution policy.
func DefaultAttributionConfig() AttributionConfig {
	return AttributionConfig{
		ToleranceFraction:      decimal.NewFromFloat(0.5),
		ToleranceFloor:         decimal.NewFromInt(200),
		SheetDateToleranceDays: 3,
		MinNameKeywordLength:   4,
	}
}

// AmountWithinTolerance reports whether actual is close enough to the
// expected installment amount: |actual - expected| <= max(fraction*expected,
// floor).
func (c AttributionConfig) AmountWithinTolerance(actual, expected decimal.Decimal) bool {
	if expected.LessThanOrEqual(decimal.Zero) {
		return false
	}
	diff := actual.Sub(expected).Abs()
	tolerance := expected.Mul(c.ToleranceFraction)
	if tolerance.LessThan(c.ToleranceFloor) {
		tolerance = c.ToleranceFloor
	}
	return diff.LessThanOrEqual(tolerance)
}

// DateToleranceDays returns the day window for the given match mode.
func (c AttributionConfig) DateToleranceDays(mode DateMatchMode) int {
	if mode == DateMatchSheet {
		return c.SheetDateToleranceDays
	}
	return 0
}
