// Package reconciliation implements the collection-reconciliation engine.
package reconciliation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/domain/valueobject"
)

func newAggregator() *Aggregator {
	return NewAggregator(valueobject.DefaultClassifierConfig(), valueobject.DefaultAttributionConfig())
}

func newMember() *entity.Member {
	return entity.NewMember(uuid.New(), "Amina Begum", "01712345678", "Mirpur", valueobject.ScheduleDaily)
}

func sheetColumns(year int, month time.Month, days ...int) []valueobject.CalendarDate {
	cols := make([]valueobject.CalendarDate, 0, len(days))
	for _, d := range days {
		cols = append(cols, valueobject.NewCalendarDate(year, month, d))
	}
	return cols
}

func loanRecord(member *entity.Member, note string, amount int64, day int) *entity.CollectionRecord {
	collected := time.Date(2024, 11, day, 10, 0, 0, 0, time.UTC)
	return &entity.CollectionRecord{
		ID:             uuid.New(),
		MemberID:       member.ID,
		Amount:         decimal.NewFromInt(amount),
		Type:           entity.RecordTypeRegular,
		Status:         entity.RecordStatusCollected,
		Note:           note,
		CollectionDate: &collected,
		CreatedAt:      collected,
	}
}

func savingsRecord(member *entity.Member, note string, amount int64, day int) *entity.CollectionRecord {
	record := loanRecord(member, note, amount, day)
	record.Type = entity.RecordTypeExtra
	return record
}

func TestAggregate_ProductNameMatchContributesEffectiveAmount(t *testing.T) {
	// Scenario: expected installment 200, payment of 210 with no
	// distribution ID but the product name in the note.
	agg := newAggregator()
	member := newMember()
	row := newSaleRow("S-1021", "Rice Cooker", 1600, 8, nil)

	record := loanRecord(member, "Product Loan: rice cooker - Installment 1/8", 210, 5)

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{row},
		Records: []*entity.CollectionRecord{record},
		Columns: sheetColumns(2024, time.November, 5),
		Mode:    valueobject.DateMatchSheet,
	})

	if len(model.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(model.Rows))
	}
	got := model.Rows[0]
	if !got.PaidAmount.Equal(decimal.NewFromInt(210)) {
		t.Errorf("PaidAmount = %v, want 210", got.PaidAmount)
	}
	if !got.PendingAmount.Equal(decimal.NewFromInt(1390)) {
		t.Errorf("PendingAmount = %v, want 1390", got.PendingAmount)
	}
}

func TestAggregate_OverCollectionIsCappedAndLogged(t *testing.T) {
	// Two 800 payments against a 1000 row: capped at 1000, one
	// over-collection diagnostic.
	agg := newAggregator()
	member := newMember()
	row := newSaleRow("S-2000", "Sewing Machine", 1000, 5, strPtr("DIST-S-2000-1"))

	first := loanRecord(member, "Full Payment part one", 800, 4)
	first.DistributionID = strPtr("DIST-S-2000-1")
	second := loanRecord(member, "Full Payment part two", 800, 6)
	second.DistributionID = strPtr("DIST-S-2000-1")

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{row},
		Records: []*entity.CollectionRecord{first, second},
		Columns: sheetColumns(2024, time.November, 4, 6),
		Mode:    valueobject.DateMatchSheet,
	})

	got := model.Rows[0]
	if !got.PaidAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("PaidAmount = %v, want 1000", got.PaidAmount)
	}
	if !got.PendingAmount.IsZero() {
		t.Errorf("PendingAmount = %v, want 0", got.PendingAmount)
	}
	if !got.FullyPaid {
		t.Error("expected row to be fully paid")
	}
	if model.Diagnostics.OverCollections != 1 {
		t.Errorf("OverCollections = %d, want 1", model.Diagnostics.OverCollections)
	}
}

func TestAggregate_NoDoubleCountingAcrossRows(t *testing.T) {
	// A record that could amount-match both rows is attributed exactly once.
	agg := newAggregator()
	member := newMember()
	rows := []*entity.SaleRow{
		newSaleRow("S-1", "Rice Cooker", 1600, 8, nil), // expected 200
		newSaleRow("S-2", "Table Fan", 1800, 9, nil),   // expected 200
	}
	rows[1].SaleDate = rows[0].SaleDate.AddDate(0, 0, 7)

	record := loanRecord(member, "Installment collected", 200, 5)

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    rows,
		Records: []*entity.CollectionRecord{record},
		Columns: sheetColumns(2024, time.November, 5),
		Mode:    valueobject.DateMatchSheet,
	})

	totalAttributed := decimal.Zero
	for _, row := range model.Rows {
		totalAttributed = totalAttributed.Add(row.PaidAmount)
	}
	if !totalAttributed.Equal(decimal.NewFromInt(200)) {
		t.Errorf("total attributed = %v, want exactly 200 (no double counting)", totalAttributed)
	}
	if model.Diagnostics.AmbiguousAttributions != 1 {
		t.Errorf("AmbiguousAttributions = %d, want 1", model.Diagnostics.AmbiguousAttributions)
	}
	// Resolved by row order: the chronologically first row wins.
	if !model.Rows[0].PaidAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("first row PaidAmount = %v, want 200", model.Rows[0].PaidAmount)
	}
}

func TestAggregate_DuplicateRecordSkippedByGuard(t *testing.T) {
	agg := newAggregator()
	member := newMember()
	row := newSaleRow("S-1", "Rice Cooker", 1600, 8, strPtr("DIST-S-1-1"))

	record := loanRecord(member, "Installment", 200, 5)
	record.DistributionID = strPtr("DIST-S-1-1")

	// The same record delivered twice in one pass must count once.
	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{row},
		Records: []*entity.CollectionRecord{record, record},
		Columns: sheetColumns(2024, time.November, 5),
		Mode:    valueobject.DateMatchSheet,
	})

	if !model.Rows[0].PaidAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("PaidAmount = %v, want 200", model.Rows[0].PaidAmount)
	}
	if model.Diagnostics.GuardSkips != 1 {
		t.Errorf("GuardSkips = %d, want 1", model.Diagnostics.GuardSkips)
	}
}

func TestAggregate_SavingsTransferToNextActiveRow(t *testing.T) {
	// A fully-paid row's net savings of +300 appears as an explicit opening
	// balance line on the next active row, not merged into direct figures.
	agg := newAggregator()
	member := newMember()

	paidOff := newSaleRow("S-OLD", "Rice Cooker", 400, 2, strPtr("DIST-S-OLD-1"))
	active := newSaleRow("S-NEW", "Table Fan", 1800, 9, strPtr("DIST-S-NEW-1"))
	active.SaleDate = paidOff.SaleDate.AddDate(0, 1, 0)

	payoff := loanRecord(member, "Full Payment", 400, 3)
	payoff.DistributionID = strPtr("DIST-S-OLD-1")
	savings := savingsRecord(member, "Savings Collection", 300, 4)
	savings.DistributionID = strPtr("DIST-S-OLD-1")

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{paidOff, active},
		Records: []*entity.CollectionRecord{payoff, savings},
		Columns: sheetColumns(2024, time.November, 3, 4),
		Mode:    valueobject.DateMatchSheet,
	})

	oldRow, newRow := model.Rows[0], model.Rows[1]
	if !oldRow.FullyPaid {
		t.Fatal("expected first row to be fully paid")
	}
	if !oldRow.DirectSavings.Equal(decimal.NewFromInt(300)) {
		t.Errorf("paid-off row DirectSavings = %v, want 300", oldRow.DirectSavings)
	}
	if len(newRow.OpeningBalances) != 1 {
		t.Fatalf("expected 1 opening balance line, got %d", len(newRow.OpeningBalances))
	}
	line := newRow.OpeningBalances[0]
	if line.FromSaleID != "S-OLD" {
		t.Errorf("FromSaleID = %q, want S-OLD", line.FromSaleID)
	}
	if !line.Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("transferred amount = %v, want 300", line.Amount)
	}
	if !newRow.DirectSavings.IsZero() {
		t.Errorf("active row DirectSavings = %v, want 0 (transfer not merged)", newRow.DirectSavings)
	}
}

func TestAggregate_NegativeTransferPreserved(t *testing.T) {
	// Withdrawals exceeding a completed row's deposits carry a negative
	// opening balance; the sign is preserved, not corrected.
	agg := newAggregator()
	member := newMember()

	paidOff := newSaleRow("S-OLD", "Rice Cooker", 400, 2, strPtr("DIST-S-OLD-1"))
	active := newSaleRow("S-NEW", "Table Fan", 1800, 9, strPtr("DIST-S-NEW-1"))
	active.SaleDate = paidOff.SaleDate.AddDate(0, 1, 0)

	payoff := loanRecord(member, "Full Payment", 400, 3)
	payoff.DistributionID = strPtr("DIST-S-OLD-1")
	withdrawal := savingsRecord(member, "Savings Withdrawal", 250, 4)
	withdrawal.DistributionID = strPtr("DIST-S-OLD-1")

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{paidOff, active},
		Records: []*entity.CollectionRecord{payoff, withdrawal},
		Columns: sheetColumns(2024, time.November, 3, 4),
		Mode:    valueobject.DateMatchSheet,
	})

	newRow := model.Rows[1]
	if len(newRow.OpeningBalances) != 1 {
		t.Fatalf("expected 1 opening balance line, got %d", len(newRow.OpeningBalances))
	}
	if !newRow.OpeningBalances[0].Amount.Equal(decimal.NewFromInt(-250)) {
		t.Errorf("transferred amount = %v, want -250", newRow.OpeningBalances[0].Amount)
	}
}

func TestAggregate_BlankBeforeDelivery(t *testing.T) {
	agg := newAggregator()
	member := newMember()
	row := newSaleRow("S-1", "Rice Cooker", 1600, 8, strPtr("DIST-S-1-1"))
	delivery := time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC)
	row.Products[0].DeliveryDate = &delivery

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{row},
		Records: nil,
		Columns: sheetColumns(2024, time.November, 9, 10, 11),
		Mode:    valueobject.DateMatchSheet,
	})

	cells := model.Rows[0].Cells
	for i := 0; i < 2; i++ {
		if cells[i].Loan != nil || cells[i].SavingsIn != nil || cells[i].SavingsOut != nil {
			t.Errorf("column %d on/before delivery must be blank", i)
		}
	}
	if cells[2].Loan == nil {
		t.Fatal("column after delivery must show the scheduled installment")
	}
	if !cells[2].Loan.Equal(decimal.NewFromInt(200)) {
		t.Errorf("due figure = %v, want scheduled 200", cells[2].Loan)
	}
}

func TestAggregate_UnknownDeliveryDateIsAllBlank(t *testing.T) {
	agg := newAggregator()
	member := newMember()
	row := newSaleRow("S-1", "Rice Cooker", 1600, 8, nil)
	row.Products[0].DeliveryDate = nil

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{row},
		Records: nil,
		Columns: sheetColumns(2024, time.November, 5, 6),
		Mode:    valueobject.DateMatchSheet,
	})

	for i, cell := range model.Rows[0].Cells {
		if cell.Loan != nil || cell.SavingsIn != nil || cell.SavingsOut != nil {
			t.Errorf("column %d must be blank when delivery date is unknown", i)
		}
	}
}

func TestAggregate_SavingsFallbackToFirstActiveRow(t *testing.T) {
	// A savings record with no distribution ID and no product hint lands on
	// the first still-active row, never duplicated elsewhere.
	agg := newAggregator()
	member := newMember()

	paidOff := newSaleRow("S-OLD", "Rice Cooker", 400, 2, strPtr("DIST-S-OLD-1"))
	active := newSaleRow("S-NEW", "Table Fan", 1800, 9, strPtr("DIST-S-NEW-1"))
	active.SaleDate = paidOff.SaleDate.AddDate(0, 1, 0)

	payoff := loanRecord(member, "Full Payment", 400, 3)
	payoff.DistributionID = strPtr("DIST-S-OLD-1")
	savings := savingsRecord(member, "Savings Collection", 120, 5)

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{paidOff, active},
		Records: []*entity.CollectionRecord{payoff, savings},
		Columns: sheetColumns(2024, time.November, 3, 5),
		Mode:    valueobject.DateMatchSheet,
	})

	if !model.Rows[1].DirectSavings.Equal(decimal.NewFromInt(120)) {
		t.Errorf("active row DirectSavings = %v, want 120", model.Rows[1].DirectSavings)
	}
	if !model.Rows[0].DirectSavings.IsZero() {
		t.Errorf("paid-off row DirectSavings = %v, want 0", model.Rows[0].DirectSavings)
	}
}

func TestAggregate_BackendSavingsBalancePreferred(t *testing.T) {
	agg := newAggregator()
	member := newMember()
	backend := decimal.NewFromInt(750)
	member.TotalSavings = &backend

	savings := savingsRecord(member, "Savings Collection", 120, 5)

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{newSaleRow("S-1", "Rice Cooker", 1600, 8, nil)},
		Records: []*entity.CollectionRecord{savings},
		Columns: sheetColumns(2024, time.November, 5),
		Mode:    valueobject.DateMatchSheet,
	})

	if model.SavingsSource != valueobject.SavingsSourceBackend {
		t.Errorf("SavingsSource = %v, want backend", model.SavingsSource)
	}
	if !model.SavingsBalance.Equal(backend) {
		t.Errorf("SavingsBalance = %v, want 750", model.SavingsBalance)
	}
}

func TestAggregate_DerivedSavingsBalanceForLegacyMember(t *testing.T) {
	agg := newAggregator()
	member := newMember()
	member.TotalSavings = nil

	deposit := savingsRecord(member, "Savings Collection", 500, 5)
	withdrawal := savingsRecord(member, "Savings Withdrawal", 200, 6)

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{newSaleRow("S-1", "Rice Cooker", 1600, 8, nil)},
		Records: []*entity.CollectionRecord{deposit, withdrawal},
		Columns: sheetColumns(2024, time.November, 5, 6),
		Mode:    valueobject.DateMatchSheet,
	})

	if model.SavingsSource != valueobject.SavingsSourceDerived {
		t.Errorf("SavingsSource = %v, want derived", model.SavingsSource)
	}
	if !model.SavingsBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("SavingsBalance = %v, want 300", model.SavingsBalance)
	}
}

func TestAggregate_BadRecordDegradesOnlyItself(t *testing.T) {
	agg := newAggregator()
	member := newMember()
	row := newSaleRow("S-1", "Rice Cooker", 1600, 8, strPtr("DIST-S-1-1"))

	good := loanRecord(member, "Installment", 200, 5)
	good.DistributionID = strPtr("DIST-S-1-1")
	bad := loanRecord(member, "Installment", -50, 5)
	bad.DistributionID = strPtr("DIST-S-1-1")

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    []*entity.SaleRow{row},
		Records: []*entity.CollectionRecord{bad, good},
		Columns: sheetColumns(2024, time.November, 5),
		Mode:    valueobject.DateMatchSheet,
	})

	if !model.Rows[0].PaidAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("PaidAmount = %v, want 200 (bad record excluded)", model.Rows[0].PaidAmount)
	}
	if model.Diagnostics.UnparseableRecords != 1 {
		t.Errorf("UnparseableRecords = %d, want 1", model.Diagnostics.UnparseableRecords)
	}
}

func makeStates(rows []*entity.SaleRow) []*rowState {
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
	return states
}

func TestAttributeLoan_ReportsWinningBasis(t *testing.T) {
	agg := newAggregator()
	member := newMember()

	tests := []struct {
		name           string
		note           string
		distributionID *string
		amount         int64
		wantIdx        int
		wantBasis      valueobject.MatchBasis
	}{
		{"distribution id wins", "Installment", strPtr("DIST-S-1021-1"), 75, 0, valueobject.MatchBasisDistributionID},
		{"id containment wins", "Installment", strPtr("S-1021"), 75, 0, valueobject.MatchBasisIDContainment},
		{"product name wins", "Product Loan: rice cooker", nil, 75, 0, valueobject.MatchBasisProductName},
		{"amount tolerance wins", "Installment", nil, 200, 0, valueobject.MatchBasisAmount},
		{"no signal", "Installment", nil, 999, -1, valueobject.MatchBasisNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []*entity.SaleRow{newSaleRow("S-1021", "Rice Cooker", 1600, 8, strPtr("DIST-S-1021-1"))}
			record := loanRecord(member, tt.note, tt.amount, 5)
			record.DistributionID = tt.distributionID
			cr := classifiedRecord{
				record:          record,
				kind:            valueobject.KindLoanInstallmentPayment,
				effectiveDate:   valueobject.NewCalendarDate(2024, time.November, 5),
				effectiveAmount: decimal.NewFromInt(tt.amount),
			}

			var diag valueobject.PassDiagnostics
			idx, basis := agg.attributeLoan(cr, rows, makeStates(rows), &diag)
			if idx != tt.wantIdx {
				t.Errorf("index = %d, want %d", idx, tt.wantIdx)
			}
			if basis != tt.wantBasis {
				t.Errorf("basis = %q, want %q", basis, tt.wantBasis)
			}
		})
	}
}

func TestAttributeSavings_FallbackBasisIsFirstRow(t *testing.T) {
	agg := newAggregator()
	member := newMember()
	rows := []*entity.SaleRow{newSaleRow("S-1021", "Rice Cooker", 1600, 8, strPtr("DIST-S-1021-1"))}

	record := savingsRecord(member, "Savings Collection", 120, 5)
	cr := classifiedRecord{
		record:          record,
		kind:            valueobject.KindSavingsDeposit,
		effectiveDate:   valueobject.NewCalendarDate(2024, time.November, 5),
		effectiveAmount: decimal.NewFromInt(120),
	}

	idx, basis := agg.attributeSavings(cr, rows, makeStates(rows))
	if idx != 0 {
		t.Errorf("index = %d, want 0", idx)
	}
	if basis != valueobject.MatchBasisFirstRow {
		t.Errorf("basis = %q, want %q", basis, valueobject.MatchBasisFirstRow)
	}
}

func TestAggregate_CapInvariantHolds(t *testing.T) {
	agg := newAggregator()
	member := newMember()
	rows := []*entity.SaleRow{
		newSaleRow("S-1", "Rice Cooker", 1000, 5, strPtr("DIST-S-1-1")),
		newSaleRow("S-2", "Table Fan", 900, 9, strPtr("DIST-S-2-1")),
	}
	rows[1].SaleDate = rows[0].SaleDate.AddDate(0, 0, 1)

	records := []*entity.CollectionRecord{}
	for day := 1; day <= 9; day++ {
		r := loanRecord(member, "Installment", 400, day)
		r.DistributionID = strPtr("DIST-S-1-1")
		records = append(records, r)
	}

	model := agg.Aggregate(AggregateInput{
		Member:  member,
		Rows:    rows,
		Records: records,
		Columns: sheetColumns(2024, time.November, 1, 2, 3, 4, 5, 6, 7, 8, 9),
		Mode:    valueobject.DateMatchSheet,
	})

	for _, row := range model.Rows {
		if row.PaidAmount.IsNegative() || row.PaidAmount.GreaterThan(row.TotalAmount) {
			t.Errorf("row %s: paid %v outside [0, %v]", row.SaleTransactionID, row.PaidAmount, row.TotalAmount)
		}
		if !row.PendingAmount.Equal(row.TotalAmount.Sub(row.PaidAmount)) {
			t.Errorf("row %s: pending %v != total - paid", row.SaleTransactionID, row.PendingAmount)
		}
	}
}
