package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFlightNotFound      = errors.New("flight not found")
	ErrInvalidFlight       = errors.New("invalid flight")
	ErrInvalidPriceRange   = errors.New("invalid price range")
	ErrNegativePrice       = errors.New("discount exceeds flight price")
	ErrDiscountUnavailable = errors.New("discount service unavailable")
	ErrDiscountTimeout     = errors.New("discount service timed out")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidFlight
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
