// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/valueobject"
)

// CellResponse represents one sheet cell. Nil figures render as JSON null,
// which the console shows as a blank cell.
type CellResponse struct {
	Loan       *decimal.Decimal `json:"loan"`
	SavingsIn  *decimal.Decimal `json:"savings_in"`
	SavingsOut *decimal.Decimal `json:"savings_out"`
}

// TransferLineResponse represents an opening-balance line transferred from a
// completed sale row.
type TransferLineResponse struct {
	FromSaleID string          `json:"from_sale_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// SheetRowResponse represents one product-sale row of the sheet.
type SheetRowResponse struct {
	SaleTransactionID string                 `json:"sale_transaction_id"`
	ProductNames      []string               `json:"product_names"`
	TotalAmount       decimal.Decimal        `json:"total_amount"`
	InstallmentCount  int                    `json:"installment_count"`
	PaidAmount        decimal.Decimal        `json:"paid_amount"`
	PendingAmount     decimal.Decimal        `json:"pending_amount"`
	FullyPaid         bool                   `json:"fully_paid"`
	DirectSavings     decimal.Decimal        `json:"direct_savings"`
	OpeningBalances   []TransferLineResponse `json:"opening_balances,omitempty"`
	Cells             []CellResponse         `json:"cells"`
}

// SheetMemberResponse represents one member's block of the sheet. Columns
// are per member because schedule modes differ.
type SheetMemberResponse struct {
	MemberID       string             `json:"member_id"`
	MemberName     string             `json:"member_name"`
	Columns        []string           `json:"columns"`
	Rows           []SheetRowResponse `json:"rows"`
	SavingsBalance decimal.Decimal    `json:"savings_balance"`
	SavingsSource  string             `json:"savings_source"`
}

// SheetResponse represents the collection sheet for one month.
type SheetResponse struct {
	Year    int                   `json:"year"`
	Month   int                   `json:"month"`
	Members []SheetMemberResponse `json:"members"`
}

// LedgerResponse represents one member's profile ledger for one month.
type LedgerResponse struct {
	Year    int                 `json:"year"`
	Month   int                 `json:"month"`
	Columns []string            `json:"columns"`
	Member  SheetMemberResponse `json:"member"`
}

// ToSheetMemberResponse converts a member render model to its DTO.
func ToSheetMemberResponse(model *valueobject.MemberRenderModel) SheetMemberResponse {
	response := SheetMemberResponse{
		MemberID:       model.MemberID.String(),
		MemberName:     model.MemberName,
		Columns:        ToColumnStrings(model.Columns),
		Rows:           make([]SheetRowResponse, 0, len(model.Rows)),
		SavingsBalance: model.SavingsBalance,
		SavingsSource:  string(model.SavingsSource),
	}
	for i := range model.Rows {
		response.Rows = append(response.Rows, toSheetRowResponse(&model.Rows[i]))
	}
	return response
}

// ToColumnStrings formats calendar dates as ISO date strings.
func ToColumnStrings(columns []valueobject.CalendarDate) []string {
	out := make([]string, 0, len(columns))
	for _, column := range columns {
		out = append(out, column.String())
	}
	return out
}

func toSheetRowResponse(row *valueobject.RowRenderModel) SheetRowResponse {
	response := SheetRowResponse{
		SaleTransactionID: row.SaleTransactionID,
		ProductNames:      row.ProductNames,
		TotalAmount:       row.TotalAmount,
		InstallmentCount:  row.InstallmentCount,
		PaidAmount:        row.PaidAmount,
		PendingAmount:     row.PendingAmount,
		FullyPaid:         row.FullyPaid,
		DirectSavings:     row.DirectSavings,
		Cells:             make([]CellResponse, 0, len(row.Cells)),
	}
	for _, line := range row.OpeningBalances {
		response.OpeningBalances = append(response.OpeningBalances, TransferLineResponse{
			FromSaleID: line.FromSaleID,
			Amount:     line.Amount,
		})
	}
	for _, cell := range row.Cells {
		response.Cells = append(response.Cells, CellResponse{
			Loan:       cell.Loan,
			SavingsIn:  cell.SavingsIn,
			SavingsOut: cell.SavingsOut,
		})
	}
	return response
}
