// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
)

// RecordCollectionRequest represents the request body for recording a
// collection.
type RecordCollectionRequest struct {
	MemberID       string          `json:"member_id" binding:"required,uuid"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Kind           string          `json:"kind" binding:"required,oneof=installment savings_deposit savings_withdrawal"`
	Note           string          `json:"note" binding:"max=500"`
	DistributionID *string         `json:"distribution_id"`
	CollectionDate *time.Time      `json:"collection_date"`
}

// CollectionRecordResponse represents a collection record in API responses.
type CollectionRecordResponse struct {
	ID             string           `json:"id"`
	MemberID       string           `json:"member_id"`
	Amount         decimal.Decimal  `json:"amount"`
	PaidAmount     *decimal.Decimal `json:"paid_amount"`
	Type           string           `json:"type"`
	Status         string           `json:"status"`
	Note           string           `json:"note"`
	DistributionID *string          `json:"distribution_id"`
	CollectionDate *time.Time       `json:"collection_date"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ToCollectionRecordResponse converts a domain CollectionRecord to its DTO.
func ToCollectionRecordResponse(record *entity.CollectionRecord) CollectionRecordResponse {
	return CollectionRecordResponse{
		ID:             record.ID.String(),
		MemberID:       record.MemberID.String(),
		Amount:         record.Amount,
		PaidAmount:     record.PaidAmount,
		Type:           string(record.Type),
		Status:         string(record.Status),
		Note:           record.Note,
		DistributionID: record.DistributionID,
		CollectionDate: record.CollectionDate,
		CreatedAt:      record.CreatedAt,
	}
}
