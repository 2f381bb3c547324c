// Package auth contains authentication-related use cases.
package auth

import (
	"context"

	"github.com/field-console/backend/internal/application/adapter"
)

// LogoutCollectorInput represents the input for collector logout.
type LogoutCollectorInput struct {
	RefreshToken string
}

// LogoutCollectorOutput represents the output of collector logout.
type LogoutCollectorOutput struct {
	Message string
}

// LogoutCollectorUseCase handles collector logout logic.
type LogoutCollectorUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutCollectorUseCase creates a new LogoutCollectorUseCase instance.
func NewLogoutCollectorUseCase(tokenService adapter.TokenService) *LogoutCollectorUseCase {
	return &LogoutCollectorUseCase{
		tokenService: tokenService,
	}
}

// Execute invalidates the refresh token. The token may already be invalid,
// in which case logout still succeeds.
func (uc *LogoutCollectorUseCase) Execute(ctx context.Context, input LogoutCollectorInput) (*LogoutCollectorOutput, error) {
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)

	return &LogoutCollectorOutput{
		Message: "Successfully logged out",
	}, nil
}
