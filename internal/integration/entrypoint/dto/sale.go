// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleProductRequest represents one product entry of a sale submission.
type SaleProductRequest struct {
	Name                 string          `json:"name" binding:"required,min=1,max=100"`
	TotalAmount          decimal.Decimal `json:"total_amount" binding:"required"`
	TotalInstallments    int             `json:"total_installments" binding:"required,min=1"`
	InstallmentFrequency string          `json:"installment_frequency" binding:"required,oneof=daily weekly monthly"`
	DeliveryDate         *time.Time      `json:"delivery_date"`
}

// RegisterSaleRequest represents the request body for registering a sale.
type RegisterSaleRequest struct {
	MemberID string               `json:"member_id" binding:"required,uuid"`
	SaleDate *time.Time           `json:"sale_date"`
	Products []SaleProductRequest `json:"products" binding:"required,min=1,dive"`
}

// RegisterSaleResponse represents the response for registering a sale.
type RegisterSaleResponse struct {
	SaleTransactionID string          `json:"sale_transaction_id"`
	DistributionIDs   []string        `json:"distribution_ids"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}
