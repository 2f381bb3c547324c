// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/domain/valueobject"
)

// MemberModel represents the members table in the database.
type MemberModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CollectorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Phone       string    `gorm:"type:varchar(30)"`
	Area        string    `gorm:"type:varchar(100);index"`
	// TotalSavings is nullable: legacy members predate balance tracking and
	// their balance is derived from records instead.
	TotalSavings    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	ScheduleMode    string           `gorm:"type:varchar(10);not null;default:'daily'"`
	ScheduleWeekday int              `gorm:"type:integer;default:0"`
	CreatedAt       time.Time        `gorm:"not null"`
	UpdatedAt       time.Time        `gorm:"not null"`

	Collector *CollectorModel `gorm:"foreignKey:CollectorID;references:ID"`
}

// TableName returns the table name for the MemberModel.
func (MemberModel) TableName() string {
	return "members"
}

// ToEntity converts a MemberModel to a domain Member entity.
func (m *MemberModel) ToEntity() *entity.Member {
	return &entity.Member{
		ID:              m.ID,
		CollectorID:     m.CollectorID,
		Name:            m.Name,
		Phone:           m.Phone,
		Area:            m.Area,
		TotalSavings:    m.TotalSavings,
		ScheduleMode:    valueobject.ScheduleMode(m.ScheduleMode),
		ScheduleWeekday: time.Weekday(m.ScheduleWeekday),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// MemberFromEntity creates a MemberModel from a domain Member entity.
func MemberFromEntity(member *entity.Member) *MemberModel {
	return &MemberModel{
		ID:              member.ID,
		CollectorID:     member.CollectorID,
		Name:            member.Name,
		Phone:           member.Phone,
		Area:            member.Area,
		TotalSavings:    member.TotalSavings,
		ScheduleMode:    string(member.ScheduleMode),
		ScheduleWeekday: int(member.ScheduleWeekday),
		CreatedAt:       member.CreatedAt,
		UpdatedAt:       member.UpdatedAt,
	}
}
