// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"regexp"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
)

// RegisterCollectorInput represents the input for collector registration.
type RegisterCollectorInput struct {
	Email    string
	Name     string
	Password string
	Branch   string
}

// RegisterCollectorOutput represents the output of collector registration.
type RegisterCollectorOutput struct {
	AccessToken  string
	RefreshToken string
	Collector    *entity.Collector
}

// RegisterCollectorUseCase handles collector registration logic.
type RegisterCollectorUseCase struct {
	collectorRepo   adapter.CollectorRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterCollectorUseCase creates a new RegisterCollectorUseCase instance.
func NewRegisterCollectorUseCase(
	collectorRepo adapter.CollectorRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterCollectorUseCase {
	return &RegisterCollectorUseCase{
		collectorRepo:   collectorRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the collector registration.
func (uc *RegisterCollectorUseCase) Execute(ctx context.Context, input RegisterCollectorInput) (*RegisterCollectorOutput, error) {
	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.collectorRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	collector := entity.NewCollector(input.Name, input.Email, passwordHash, input.Branch)

	if err := uc.collectorRepo.Create(ctx, collector); err != nil {
		return nil, fmt.Errorf("failed to create collector: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, collector.ID, collector.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &RegisterCollectorOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Collector:    collector,
	}, nil
}

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
