// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/field-console/backend/internal/application/adapter"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// CollectorIDKey is the context key for the authenticated collector's ID.
	CollectorIDKey ContextKey = "collector_id"
	// CollectorEmailKey is the context key for the authenticated collector's email.
	CollectorEmailKey ContextKey = "collector_email"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(string(CollectorIDKey), claims.CollectorID)
		c.Set(string(CollectorEmailKey), claims.Email)

		c.Next()
	}
}

// GetCollectorIDFromContext extracts the collector ID from the Gin context.
func GetCollectorIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	collectorID, exists := c.Get(string(CollectorIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := collectorID.(uuid.UUID)
	return id, ok
}

// GetCollectorEmailFromContext extracts the collector email from the Gin context.
func GetCollectorEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(CollectorEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
