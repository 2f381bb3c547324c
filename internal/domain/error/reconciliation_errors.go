// Package error defines domain-specific errors for the Field Console application.
package error

import "errors"

// Reconciliation domain errors. All of these are locally recovered during an
// aggregation pass: the pass continues with a degraded or capped value and a
// diagnostic entry, and none of them abort processing of other rows or
// members.
var (
	// ErrInvalidRecordDate is recorded when a record carries no parseable date.
	ErrInvalidRecordDate = errors.New("record has no parseable date")

	// ErrInvalidRecordAmount is recorded when a record amount is negative or non-finite.
	ErrInvalidRecordAmount = errors.New("record amount is invalid")

	// ErrAmbiguousAttribution is recorded when a record matches multiple rows
	// under the amount-tolerance rule with no higher-precedence match.
	ErrAmbiguousAttribution = errors.New("record attribution is ambiguous")

	// ErrOverCollection is recorded when attributed payments exceed a row's
	// total amount. The paid amount is capped, never propagated as a failure.
	ErrOverCollection = errors.New("collected amount exceeds row total")
)

// ReconciliationErrorCode defines error codes for reconciliation diagnostics.
// Format: RCN-XXYYYY where XX is category and YYYY is specific error.
type ReconciliationErrorCode string

const (
	// Record validation (01XXXX)
	ErrCodeInvalidRecordDate   ReconciliationErrorCode = "RCN-010001"
	ErrCodeInvalidRecordAmount ReconciliationErrorCode = "RCN-010002"

	// Attribution (02XXXX)
	ErrCodeAmbiguousAttribution ReconciliationErrorCode = "RCN-020001"
	ErrCodeOverCollection       ReconciliationErrorCode = "RCN-020002"
)
