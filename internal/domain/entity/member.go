// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/valueobject"
)

// Member is a microfinance member served by a collector.
type Member struct {
	ID          uuid.UUID
	CollectorID uuid.UUID
	Name        string
	Phone       string
	Area        string
	// TotalSavings is the authoritative running savings balance maintained
	// by the ledger. nil on legacy records, in which case the balance is
	// derived from attributed transactions instead.
	TotalSavings *decimal.Decimal
	ScheduleMode valueobject.ScheduleMode
	// ScheduleWeekday applies only to weekly schedules.
	ScheduleWeekday time.Weekday
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewMember creates a new member owned by a collector.
func NewMember(collectorID uuid.UUID, name, phone, area string, mode valueobject.ScheduleMode) *Member {
	now := time.Now().UTC()
	return &Member{
		ID:           uuid.New(),
		CollectorID:  collectorID,
		Name:         name,
		Phone:        phone,
		Area:         area,
		ScheduleMode: mode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
