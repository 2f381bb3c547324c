// Package member contains member-related use cases.
package member

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/domain/valueobject"
)

// CreateMemberInput represents the input for registering a member.
type CreateMemberInput struct {
	CollectorID     uuid.UUID
	Name            string
	Phone           string
	Area            string
	ScheduleMode    valueobject.ScheduleMode
	ScheduleWeekday time.Weekday
}

// CreateMemberOutput represents the output of registering a member.
type CreateMemberOutput struct {
	Member *entity.Member
}

// CreateMemberUseCase handles member registration logic.
type CreateMemberUseCase struct {
	memberRepo adapter.MemberRepository
}

// NewCreateMemberUseCase creates a new CreateMemberUseCase instance.
func NewCreateMemberUseCase(memberRepo adapter.MemberRepository) *CreateMemberUseCase {
	return &CreateMemberUseCase{
		memberRepo: memberRepo,
	}
}

// Execute registers a new member under the collector.
func (uc *CreateMemberUseCase) Execute(ctx context.Context, input CreateMemberInput) (*CreateMemberOutput, error) {
	if !input.ScheduleMode.Valid() {
		return nil, domainerror.ErrInvalidScheduleMode
	}

	member := entity.NewMember(input.CollectorID, input.Name, input.Phone, input.Area, input.ScheduleMode)
	member.ScheduleWeekday = input.ScheduleWeekday

	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return &CreateMemberOutput{Member: member}, nil
}
