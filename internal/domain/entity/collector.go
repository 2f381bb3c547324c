// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Collector is a field agent who records collections and sales.
type Collector struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Branch       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCollector creates a new collector account.
func NewCollector(name, email, passwordHash, branch string) *Collector {
	now := time.Now().UTC()
	return &Collector{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Branch:       branch,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
