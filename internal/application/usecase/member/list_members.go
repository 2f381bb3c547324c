// Package member contains member-related use cases.
package member

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
)

// ListMembersInput represents the input for listing a collector's members.
type ListMembersInput struct {
	CollectorID uuid.UUID
}

// ListMembersOutput represents the output of listing members.
type ListMembersOutput struct {
	Members []*entity.Member
}

// ListMembersUseCase handles listing the members served by a collector.
type ListMembersUseCase struct {
	memberRepo adapter.MemberRepository
}

// NewListMembersUseCase creates a new ListMembersUseCase instance.
func NewListMembersUseCase(memberRepo adapter.MemberRepository) *ListMembersUseCase {
	return &ListMembersUseCase{
		memberRepo: memberRepo,
	}
}

// Execute lists the collector's members ordered by name.
func (uc *ListMembersUseCase) Execute(ctx context.Context, input ListMembersInput) (*ListMembersOutput, error) {
	members, err := uc.memberRepo.FindByCollector(ctx, input.CollectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return &ListMembersOutput{Members: members}, nil
}
