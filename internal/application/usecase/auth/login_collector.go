// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
)

// LoginCollectorInput represents the input for collector login.
type LoginCollectorInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginCollectorOutput represents the output of collector login.
type LoginCollectorOutput struct {
	AccessToken  string
	RefreshToken string
	Collector    *entity.Collector
}

// LoginCollectorUseCase handles collector login logic.
type LoginCollectorUseCase struct {
	collectorRepo   adapter.CollectorRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginCollectorUseCase creates a new LoginCollectorUseCase instance.
func NewLoginCollectorUseCase(
	collectorRepo adapter.CollectorRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginCollectorUseCase {
	return &LoginCollectorUseCase{
		collectorRepo:   collectorRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the collector login.
func (uc *LoginCollectorUseCase) Execute(ctx context.Context, input LoginCollectorInput) (*LoginCollectorOutput, error) {
	collector, err := uc.collectorRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		// Generic error to prevent email enumeration
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.passwordService.VerifyPassword(collector.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, collector.ID, collector.Email, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginCollectorOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Collector:    collector,
	}, nil
}
