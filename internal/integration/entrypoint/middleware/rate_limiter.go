// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed login attempts
	// per window per client IP.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default rate-limit window.
	defaultWindowDuration = 1 * time.Minute
)

// rateLimitWindow tracks attempts inside one window for a single client.
type rateLimitWindow struct {
	attempts int
	resetAt  time.Time
}

// RateLimiter is an in-process, IP-keyed fixed-window rate limiter used on
// the login endpoint.
type RateLimiter struct {
	mu             sync.Mutex
	windows        map[string]*rateLimitWindow
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:        make(map[string]*rateLimitWindow),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin handler that enforces the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(clientIP) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	window, ok := rl.windows[key]
	if !ok || now.After(window.resetAt) {
		rl.windows[key] = &rateLimitWindow{
			attempts: 1,
			resetAt:  now.Add(rl.windowDuration),
		}
		return true
	}

	if window.attempts < rl.maxAttempts {
		window.attempts++
		return true
	}
	return false
}

// Reset clears all tracked windows.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.windows = make(map[string]*rateLimitWindow)
}

// Cleanup drops expired windows to free memory.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, window := range rl.windows {
		if now.After(window.resetAt) {
			delete(rl.windows, key)
		}
	}
}
