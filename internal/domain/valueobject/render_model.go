// Package valueobject contains domain value objects for the Field Console system.
package valueobject

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsSource records where a member's displayed savings balance came from.
type SavingsSource string

const (
	// SavingsSourceBackend means the authoritative totalSavings field was
	// present and used as-is.
	SavingsSourceBackend SavingsSource = "backend"
	// SavingsSourceDerived means the balance was summed from attributed
	// records (legacy data lacking totalSavings).
	SavingsSourceDerived SavingsSource = "derived"
)

// CellTriplet holds the three sub-column figures of one sheet cell. A nil
// figure renders blank ("not yet applicable"); zero would mean "applicable
// and nothing happened".
type CellTriplet struct {
	Loan       *decimal.Decimal
	SavingsIn  *decimal.Decimal
	SavingsOut *decimal.Decimal
}

// TransferLine is the explicit "opening balance (transferred)" entry carried
// from a fully-paid row to the next active row. Kept distinct from the
// receiving row's direct figures to preserve the audit trail.
type TransferLine struct {
	FromSaleID string
	Amount     decimal.Decimal
}

// RowRenderModel is the view-model of one product-sale row after
// aggregation.
type RowRenderModel struct {
	SaleTransactionID string
	Dofa              int
	ProductNames      []string
	TotalAmount       decimal.Decimal
	InstallmentCount  int
	PaidAmount        decimal.Decimal
	PendingAmount     decimal.Decimal
	FullyPaid         bool
	DirectSavings     decimal.Decimal
	OpeningBalances   []TransferLine
	// Cells is aligned index-for-index with MemberRenderModel.Columns.
	Cells []CellTriplet
}

// PassDiagnostics counts locally-recovered events of one aggregation pass.
// For test assertions and telemetry, never shown to end users.
type PassDiagnostics struct {
	GuardSkips            int
	UnparseableRecords    int
	OverCollections       int
	AmbiguousAttributions int
}

// Merge adds other's counts into d.
func (d *PassDiagnostics) Merge(other PassDiagnostics) {
	d.GuardSkips += other.GuardSkips
	d.UnparseableRecords += other.UnparseableRecords
	d.OverCollections += other.OverCollections
	d.AmbiguousAttributions += other.AmbiguousAttributions
}

// MemberRenderModel is everything the rendering layer needs for one member.
type MemberRenderModel struct {
	MemberID       uuid.UUID
	MemberName     string
	Columns        []CalendarDate
	Rows           []RowRenderModel
	SavingsBalance decimal.Decimal
	SavingsSource  SavingsSource
	Diagnostics    PassDiagnostics
}
