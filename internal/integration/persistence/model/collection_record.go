// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
)

// CollectionRecordModel represents the transactions table in the database.
type CollectionRecordModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	MemberID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	PaidAmount     *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Type           string           `gorm:"type:varchar(10);not null;index"`
	Status         string           `gorm:"type:varchar(10);not null;index"`
	Note           string           `gorm:"type:text"`
	DistributionID *string          `gorm:"type:varchar(100);index"`
	CollectionDate *time.Time       `gorm:"index"`
	DueDate        *time.Time
	AutoDeducted   bool      `gorm:"default:false"`
	CreatedAt      time.Time `gorm:"not null"`

	Member *MemberModel `gorm:"foreignKey:MemberID;references:ID"`
}

// TableName returns the table name for the CollectionRecordModel.
func (CollectionRecordModel) TableName() string {
	return "transactions"
}

// ToEntity converts a CollectionRecordModel to a domain CollectionRecord entity.
func (m *CollectionRecordModel) ToEntity() *entity.CollectionRecord {
	return &entity.CollectionRecord{
		ID:             m.ID,
		MemberID:       m.MemberID,
		Amount:         m.Amount,
		PaidAmount:     m.PaidAmount,
		Type:           entity.RecordType(m.Type),
		Status:         entity.RecordStatus(m.Status),
		Note:           m.Note,
		DistributionID: m.DistributionID,
		CollectionDate: m.CollectionDate,
		DueDate:        m.DueDate,
		CreatedAt:      m.CreatedAt,
		AutoDeducted:   m.AutoDeducted,
	}
}

// CollectionRecordFromEntity creates a CollectionRecordModel from a domain
// CollectionRecord entity.
func CollectionRecordFromEntity(record *entity.CollectionRecord) *CollectionRecordModel {
	return &CollectionRecordModel{
		ID:             record.ID,
		MemberID:       record.MemberID,
		Amount:         record.Amount,
		PaidAmount:     record.PaidAmount,
		Type:           string(record.Type),
		Status:         string(record.Status),
		Note:           record.Note,
		DistributionID: record.DistributionID,
		CollectionDate: record.CollectionDate,
		DueDate:        record.DueDate,
		CreatedAt:      record.CreatedAt,
		AutoDeducted:   record.AutoDeducted,
	}
}
