// Package reconciliation implements the collection-reconciliation engine.
package reconciliation

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/domain/valueobject"
)

// Aggregator folds one member's collection records into per-row and
// per-member totals. A single Aggregate call is one pass: synchronous,
// single-threaded, operating on an already-materialized record list. The
// double-counting guard is created at the start of the pass and discarded
// with it.
type Aggregator struct {
	classifier *Classifier
	matcher    *Matcher
}

// NewAggregator creates an aggregator with the given classification and
// attribution policies.
func NewAggregator(classifierConfig valueobject.ClassifierConfig, attributionConfig valueobject.AttributionConfig) *Aggregator {
	return &Aggregator{
		classifier: NewClassifier(classifierConfig),
		matcher:    NewMatcher(attributionConfig),
	}
}

// AggregateInput carries everything one member pass operates on. Records
// must be complete and stable before the pass begins; streaming delivery
// would break the double-counting invariant.
type AggregateInput struct {
	Member  *entity.Member
	Rows    []*entity.SaleRow
	Records []*entity.CollectionRecord
	Columns []valueobject.CalendarDate
	Mode    valueobject.DateMatchMode
}

// classifiedRecord is a record with its classification and effective fields
// resolved once up front.
type classifiedRecord struct {
	record          *entity.CollectionRecord
	kind            valueobject.RecordKind
	effectiveDate   valueobject.CalendarDate
	effectiveAmount decimal.Decimal
}

// rowState accumulates attribution results for one row during a pass.
type rowState struct {
	row             *entity.SaleRow
	collected       decimal.Decimal
	savingsIn       decimal.Decimal
	savingsOut      decimal.Decimal
	savingsInByCol  map[int]decimal.Decimal
	savingsOutByCol map[int]decimal.Decimal
}

// Aggregate runs one member pass and produces the render model. Bad records
// degrade only their own contribution; nothing here is fatal. The date gate
// applies to savings column placement only; loan payments attach to rows by
// identity and amount regardless of date, because row totals must reflect
// the member's full payment history.
func (a *Aggregator) Aggregate(input AggregateInput) *valueobject.MemberRenderModel {
	rows := sortRows(input.Rows)
	var diag valueobject.PassDiagnostics
	basisCounts := make(map[valueobject.MatchBasis]int)

	classified, derivedSavings := a.classifyAll(input.Records, &diag)

	states := make([]*rowState, len(rows))
	for i, row := range rows {
		states[i] = &rowState{
			row:             row,
			collected:       decimal.Zero,
			savingsIn:       decimal.Zero,
			savingsOut:      decimal.Zero,
			savingsInByCol:  make(map[int]decimal.Decimal),
			savingsOutByCol: make(map[int]decimal.Decimal),
		}
	}

	guard := NewGuard()

	// Loan payments first: row activity must be settled before the savings
	// fallback can pick the first still-active row.
	for _, cr := range classified {
		if cr.kind != valueobject.KindLoanInstallmentPayment {
			continue
		}
		idx, basis := a.attributeLoan(cr, rows, states, &diag)
		if idx < 0 {
			// No matchable identity and no tolerance match: the record is
			// excluded from row display, never duplicated and never an error.
			continue
		}
		if !guard.Claim(cr.effectiveDate, cr.record.ID) {
			continue
		}
		basisCounts[basis]++
		states[idx].collected = states[idx].collected.Add(cr.effectiveAmount)
	}

	for _, cr := range classified {
		if cr.kind == valueobject.KindLoanInstallmentPayment {
			continue
		}
		idx, basis := a.attributeSavings(cr, rows, states)
		if idx < 0 {
			continue
		}
		if !guard.Claim(cr.effectiveDate, cr.record.ID) {
			continue
		}
		basisCounts[basis]++

		state := states[idx]
		col := a.bestColumn(input.Columns, cr.effectiveDate, input.Mode)
		if cr.kind == valueobject.KindSavingsDeposit {
			state.savingsIn = state.savingsIn.Add(cr.effectiveAmount)
			if col >= 0 {
				state.savingsInByCol[col] = state.savingsInByCol[col].Add(cr.effectiveAmount)
			}
		} else {
			state.savingsOut = state.savingsOut.Add(cr.effectiveAmount)
			if col >= 0 {
				state.savingsOutByCol[col] = state.savingsOutByCol[col].Add(cr.effectiveAmount)
			}
		}
	}
	diag.GuardSkips = guard.Skips()

	rowModels := a.buildRowModels(states, input.Columns, &diag)
	a.applyTransfers(states, rowModels)

	balance, source := a.savingsBalance(input.Member, derivedSavings)

	if diag.GuardSkips > 0 || diag.UnparseableRecords > 0 || diag.OverCollections > 0 || diag.AmbiguousAttributions > 0 {
		slog.Warn("reconciliation pass recovered from degraded records",
			"member_id", input.Member.ID,
			"guard_skips", diag.GuardSkips,
			"unparseable_records", diag.UnparseableRecords,
			"over_collections", diag.OverCollections,
			"ambiguous_attributions", diag.AmbiguousAttributions,
			"attribution_bases", basisCounts,
		)
	}

	return &valueobject.MemberRenderModel{
		MemberID:       input.Member.ID,
		MemberName:     input.Member.Name,
		Columns:        input.Columns,
		Rows:           rowModels,
		SavingsBalance: balance,
		SavingsSource:  source,
		Diagnostics:    diag,
	}
}

// classifyAll resolves kind, effective date and effective amount for every
// record, dropping sale-creation and ignorable records. It also derives the
// cumulative savings balance for legacy members lacking the authoritative
// field.
func (a *Aggregator) classifyAll(records []*entity.CollectionRecord, diag *valueobject.PassDiagnostics) ([]classifiedRecord, decimal.Decimal) {
	classified := make([]classifiedRecord, 0, len(records))
	derived := decimal.Zero

	for _, record := range records {
		kind := a.classifier.Classify(record)
		if kind == valueobject.KindIgnorable || kind == valueobject.KindProductSaleCreation {
			continue
		}

		amount := a.classifier.EffectiveAmount(record)
		if record.Amount.IsNegative() || amount.IsNegative() {
			diag.UnparseableRecords++
			continue
		}
		date := a.classifier.EffectiveDate(record, kind)
		if date.IsZero() {
			diag.UnparseableRecords++
			continue
		}

		switch kind {
		case valueobject.KindSavingsDeposit:
			derived = derived.Add(amount)
		case valueobject.KindSavingsWithdrawal:
			derived = derived.Sub(amount)
		}

		classified = append(classified, classifiedRecord{
			record:          record,
			kind:            kind,
			effectiveDate:   date,
			effectiveAmount: amount,
		})
	}
	return classified, derived
}

// attributeIdentity runs the identity layers shared by loans and savings:
// distribution-ID exact match, then ID containment, then product name.
// Returns the index into rows with the layer that accepted, or -1 when no
// identity layer matched.
func (a *Aggregator) attributeIdentity(record *entity.CollectionRecord, rows []*entity.SaleRow) (int, valueobject.MatchBasis) {
	for i, row := range rows {
		if a.matcher.MatchesDistributionID(record, row) {
			return i, valueobject.MatchBasisDistributionID
		}
	}
	for i, row := range rows {
		if a.matcher.MatchesIDContainment(record, row) {
			return i, valueobject.MatchBasisIDContainment
		}
	}
	for i, row := range rows {
		if a.matcher.MatchesProductName(record, row) {
			return i, valueobject.MatchBasisProductName
		}
	}
	return -1, valueobject.MatchBasisNone
}

// attributeLoan finds the row a loan payment belongs to, strongest signal
// first across all rows. Returns -1 for unattributable, otherwise the row
// index and the basis that won.
func (a *Aggregator) attributeLoan(cr classifiedRecord, rows []*entity.SaleRow, states []*rowState, diag *valueobject.PassDiagnostics) (int, valueobject.MatchBasis) {
	if len(rows) == 0 {
		return -1, valueobject.MatchBasisNone
	}
	if idx, basis := a.attributeIdentity(cr.record, rows); idx >= 0 {
		return idx, basis
	}

	// Last resort: amount tolerance against the row's expected installment.
	matches := a.matcher.CountAmountMatches(cr.effectiveAmount, rows)
	if matches >= 2 {
		// Resolved by row order; flagged rather than silently picked.
		diag.AmbiguousAttributions++
		slog.Warn("ambiguous amount attribution resolved by row order",
			"record_id", cr.record.ID,
			"basis", valueobject.MatchBasisAmount,
			"candidate_rows", matches,
		)
	}
	for i, row := range rows {
		if a.matcher.MatchesAmountTolerance(cr.effectiveAmount, row) {
			return i, valueobject.MatchBasisAmount
		}
	}
	// Sibling-amount fallback when only one row is still active and
	// distribution IDs are missing entirely.
	if idx, only := onlyActiveState(states); only && a.matcher.MatchesSiblingAmount(cr.effectiveAmount, rows) {
		return idx, valueobject.MatchBasisAmount
	}
	return -1, valueobject.MatchBasisNone
}

// attributeSavings finds the row a savings record belongs to. Records with
// no identity hint at all fall to the first still-active row, or the
// chronologically first row when every row is settled.
func (a *Aggregator) attributeSavings(cr classifiedRecord, rows []*entity.SaleRow, states []*rowState) (int, valueobject.MatchBasis) {
	if len(rows) == 0 {
		return -1, valueobject.MatchBasisNone
	}
	if idx, basis := a.attributeIdentity(cr.record, rows); idx >= 0 {
		return idx, basis
	}
	if !a.matcher.HasIdentityHint(cr.record, rows) {
		for i, state := range states {
			if stateActive(state) {
				return i, valueobject.MatchBasisFirstRow
			}
		}
		return 0, valueobject.MatchBasisFirstRow
	}
	return -1, valueobject.MatchBasisNone
}

// stateActive reports whether the row still has uncollected amount given
// the loan payments attributed so far in this pass.
func stateActive(state *rowState) bool {
	total := state.row.TotalAmount()
	if !total.IsPositive() {
		return true
	}
	return state.collected.LessThan(total)
}

// onlyActiveState returns the index of the single still-active row, if
// there is exactly one.
func onlyActiveState(states []*rowState) (int, bool) {
	idx := -1
	for i, state := range states {
		if !stateActive(state) {
			continue
		}
		if idx >= 0 {
			return -1, false
		}
		idx = i
	}
	return idx, idx >= 0
}

// bestColumn places an effective date on the nearest column that passes the
// date gate, or -1 when no column accepts it.
func (a *Aggregator) bestColumn(columns []valueobject.CalendarDate, date valueobject.CalendarDate, mode valueobject.DateMatchMode) int {
	best := -1
	bestDistance := 0
	for i, column := range columns {
		if !a.matcher.DateGateOK(date, column, mode) {
			continue
		}
		distance := date.DaysApart(column)
		if best < 0 || distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}
	return best
}

// buildRowModels turns accumulated row states into view-models, applying
// the cap invariant and the blank-before-delivery rule.
func (a *Aggregator) buildRowModels(states []*rowState, columns []valueobject.CalendarDate, diag *valueobject.PassDiagnostics) []valueobject.RowRenderModel {
	models := make([]valueobject.RowRenderModel, len(states))
	for i, state := range states {
		row := state.row
		total := row.TotalAmount()

		paid := state.collected
		if paid.GreaterThan(total) {
			diag.OverCollections++
			paid = total
		}
		applyPaidWaterfall(row, paid)
		pending := total.Sub(paid)

		models[i] = valueobject.RowRenderModel{
			SaleTransactionID: row.SaleTransactionID,
			Dofa:              row.Dofa,
			ProductNames:      row.ProductNames(),
			TotalAmount:       total,
			InstallmentCount:  row.TotalInstallments(),
			PaidAmount:        paid,
			PendingAmount:     pending,
			FullyPaid:         paid.GreaterThanOrEqual(total) && total.IsPositive(),
			DirectSavings:     state.savingsIn.Sub(state.savingsOut),
			Cells:             a.buildCells(state, columns),
		}
	}
	return models
}

// applyPaidWaterfall distributes the row's capped paid amount across its
// product entries in order, each entry capped at its own total.
func applyPaidWaterfall(row *entity.SaleRow, paid decimal.Decimal) {
	remaining := paid
	for _, product := range row.Products {
		share := remaining
		if share.GreaterThan(product.TotalAmount) {
			share = product.TotalAmount
		}
		product.PaidAmount = share
		remaining = remaining.Sub(share)
	}
}

// buildCells produces the per-column triplets. Before the delivery date, or
// when it is unknown, all three figures are blank: blank signals "not yet
// applicable", zero would signal "applicable and nothing happened". After
// delivery the loan figure is the scheduled installment amount; the savings
// figures are actual collected amounts.
func (a *Aggregator) buildCells(state *rowState, columns []valueobject.CalendarDate) []valueobject.CellTriplet {
	cells := make([]valueobject.CellTriplet, len(columns))
	delivery := state.row.DeliveryDate()
	expected := state.row.ExpectedInstallment()

	for i, column := range columns {
		if delivery.IsZero() || !column.After(delivery) {
			continue
		}
		due := expected
		cells[i].Loan = &due
		if amount, ok := state.savingsInByCol[i]; ok {
			v := amount
			cells[i].SavingsIn = &v
		}
		if amount, ok := state.savingsOutByCol[i]; ok {
			v := amount
			cells[i].SavingsOut = &v
		}
	}
	return cells
}

// applyTransfers carries each fully-paid row's net savings forward to the
// chronologically next active row as an explicit opening-balance line. The
// amount is never merged into the receiving row's direct figures, and it is
// carried as-is even when negative (withdrawals exceeding deposits on a
// completed row are documented accounting behavior, not corrected here).
func (a *Aggregator) applyTransfers(states []*rowState, models []valueobject.RowRenderModel) {
	for i := range models {
		if !models[i].FullyPaid {
			continue
		}
		net := models[i].DirectSavings
		if net.IsZero() {
			continue
		}
		for j := i + 1; j < len(models); j++ {
			if models[j].FullyPaid {
				continue
			}
			models[j].OpeningBalances = append(models[j].OpeningBalances, valueobject.TransferLine{
				FromSaleID: models[i].SaleTransactionID,
				Amount:     net,
			})
			break
		}
		// With no later active row the transfer accumulates conceptually
		// but is not displayed.
	}
}

// savingsBalance prefers the authoritative backend balance and falls back
// to the derived cumulative sum only for legacy members lacking it.
func (a *Aggregator) savingsBalance(member *entity.Member, derived decimal.Decimal) (decimal.Decimal, valueobject.SavingsSource) {
	if member.TotalSavings != nil {
		return *member.TotalSavings, valueobject.SavingsSourceBackend
	}
	return derived, valueobject.SavingsSourceDerived
}

// sortRows orders rows chronologically by sale date, then by dofa.
func sortRows(rows []*entity.SaleRow) []*entity.SaleRow {
	sorted := make([]*entity.SaleRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SaleDate.Equal(sorted[j].SaleDate) {
			return sorted[i].Dofa < sorted[j].Dofa
		}
		return sorted[i].SaleDate.Before(sorted[j].SaleDate)
	})
	return sorted
}
