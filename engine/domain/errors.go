package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lookup and chat pipelines.
var (
	// ErrNotFound means no source produced usable data for a plate.
	ErrNotFound = errors.New("vehicle not found")
	// ErrUnavailable means a dependency could not be reached.
	ErrUnavailable = errors.New("dependency unavailable")

	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message too long")
	ErrEmptyPlate     = errors.New("registration number is empty")

	// ErrNoCredential means a required credential is not configured. The
	// affected path is skipped, never crashed.
	ErrNoCredential = errors.New("credential not configured")
)

// ValidationError wraps a sentinel with the offending field and value.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
