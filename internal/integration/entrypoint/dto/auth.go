// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/field-console/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for collector registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Branch   string `json:"branch" binding:"max=100"`
}

// LoginRequest represents the request body for collector login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for collector logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	Collector    CollectorResponse `json:"collector"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// CollectorResponse represents the collector data in API responses.
type CollectorResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Branch    string    `json:"branch"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToCollectorResponse converts a domain Collector entity to a CollectorResponse DTO.
func ToCollectorResponse(collector *entity.Collector) CollectorResponse {
	return CollectorResponse{
		ID:        collector.ID.String(),
		Email:     collector.Email,
		Name:      collector.Name,
		Branch:    collector.Branch,
		CreatedAt: collector.CreatedAt,
	}
}
