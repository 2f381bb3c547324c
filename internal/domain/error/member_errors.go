// Package error defines domain-specific errors for the Field Console application.
package error

import "errors"

// Member domain errors.
var (
	// ErrMemberNotFound is returned when a member is not found.
	ErrMemberNotFound = errors.New("member not found")

	// ErrMemberNotOwnedByCollector is returned when a member belongs to a
	// different collector.
	ErrMemberNotOwnedByCollector = errors.New("member does not belong to collector")

	// ErrInvalidScheduleMode is returned when a schedule mode is not
	// daily, weekly or monthly.
	ErrInvalidScheduleMode = errors.New("invalid schedule mode")
)

// MemberErrorCode defines error codes for member errors.
// Format: MBR-XXYYYY where XX is category and YYYY is specific error.
type MemberErrorCode string

const (
	ErrCodeMemberNotFound      MemberErrorCode = "MBR-010001"
	ErrCodeMemberNotOwned      MemberErrorCode = "MBR-010002"
	ErrCodeInvalidScheduleMode MemberErrorCode = "MBR-010003"
)
