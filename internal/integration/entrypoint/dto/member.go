// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
)

// CreateMemberRequest represents the request body for registering a member.
type CreateMemberRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=100"`
	Phone           string `json:"phone" binding:"max=30"`
	Area            string `json:"area" binding:"max=100"`
	ScheduleMode    string `json:"schedule_mode" binding:"required,oneof=daily weekly monthly"`
	ScheduleWeekday int    `json:"schedule_weekday" binding:"min=0,max=6"`
}

// MemberResponse represents the member data in API responses.
type MemberResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Phone           string           `json:"phone"`
	Area            string           `json:"area"`
	TotalSavings    *decimal.Decimal `json:"total_savings"`
	ScheduleMode    string           `json:"schedule_mode"`
	ScheduleWeekday int              `json:"schedule_weekday"`
	CreatedAt       time.Time        `json:"created_at"`
}

// MemberListResponse represents the response for listing members.
type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
	Total   int              `json:"total"`
}

// ToMemberResponse converts a domain Member entity to a MemberResponse DTO.
func ToMemberResponse(member *entity.Member) MemberResponse {
	return MemberResponse{
		ID:              member.ID.String(),
		Name:            member.Name,
		Phone:           member.Phone,
		Area:            member.Area,
		TotalSavings:    member.TotalSavings,
		ScheduleMode:    string(member.ScheduleMode),
		ScheduleWeekday: int(member.ScheduleWeekday),
		CreatedAt:       member.CreatedAt,
	}
}

// ToMemberListResponse converts member entities to a MemberListResponse DTO.
func ToMemberListResponse(members []*entity.Member) MemberListResponse {
	response := MemberListResponse{
		Members: make([]MemberResponse, 0, len(members)),
		Total:   len(members),
	}
	for _, member := range members {
		response.Members = append(response.Members, ToMemberResponse(member))
	}
	return response
}
