package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the domain services. Handlers map these to
// HTTP status codes; services never wrap them in a way that hides errors.Is.
var (
	// ErrNotFound signals an unknown id, pincode or plan.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition signals a lifecycle precondition that did not hold,
	// including transitions lost to a concurrent update.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInsufficientBalance signals a wallet overdraw attempt.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ValidationError is a caller-fixable input problem attributed to a single
// field. Provisioning returns the first violated field only.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidation builds a field-level validation error.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateError signals a uniqueness conflict on a specific field
// (username, phone or email), detected before the storage write so the
// admin UI can highlight the offending input.
type DuplicateError struct {
	Field string `json:"field"`
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for %s", e.Field)
}

// AsValidation returns the wrapped ValidationError, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsDuplicate returns the wrapped DuplicateError, if any.
func AsDuplicate(err error) (*DuplicateError, bool) {
	var de *DuplicateError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
