// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/field-console/backend/internal/domain/entity"
)

// CollectorModel represents the collectors table in the database.
type CollectorModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Branch       string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the CollectorModel.
func (CollectorModel) TableName() string {
	return "collectors"
}

// ToEntity converts a CollectorModel to a domain Collector entity.
func (m *CollectorModel) ToEntity() *entity.Collector {
	return &entity.Collector{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Branch:       m.Branch,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CollectorFromEntity creates a CollectorModel from a domain Collector entity.
func CollectorFromEntity(collector *entity.Collector) *CollectorModel {
	return &CollectorModel{
		ID:           collector.ID,
		Email:        collector.Email,
		Name:         collector.Name,
		PasswordHash: collector.PasswordHash,
		Branch:       collector.Branch,
		CreatedAt:    collector.CreatedAt,
		UpdatedAt:    collector.UpdatedAt,
	}
}

// RefreshTokenModel represents the refresh_tokens table for token
// invalidation tracking.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	CollectorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
