// Package error defines domain-specific errors for the Field Console application.
package error

import "errors"

// Collection and sale domain errors.
var (
	// ErrInvalidCollectionAmount is returned when a submitted collection
	// amount is zero or negative.
	ErrInvalidCollectionAmount = errors.New("collection amount must be positive")

	// ErrInvalidCollectionType is returned when the collection type is unknown.
	ErrInvalidCollectionType = errors.New("invalid collection type")

	// ErrSaleNotFound is returned when a sale transaction is not found.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrEmptySaleProducts is returned when a sale is submitted without products.
	ErrEmptySaleProducts = errors.New("sale must contain at least one product")

	// ErrInvalidInstallmentCount is returned when a product entry has a
	// non-positive installment count.
	ErrInvalidInstallmentCount = errors.New("installment count must be positive")
)

// CollectionErrorCode defines error codes for collection and sale errors.
// Format: COL-XXYYYY where XX is category and YYYY is specific error.
type CollectionErrorCode string

const (
	ErrCodeInvalidCollectionAmount CollectionErrorCode = "COL-010001"
	ErrCodeInvalidCollectionType   CollectionErrorCode = "COL-010002"
	ErrCodeSaleNotFound            CollectionErrorCode = "COL-020001"
	ErrCodeEmptySaleProducts       CollectionErrorCode = "COL-020002"
	ErrCodeInvalidInstallmentCount CollectionErrorCode = "COL-020003"
)
