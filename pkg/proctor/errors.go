package proctor

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no live session matches the session ID
	ErrNotFound = errors.New("proctoring session not found")

	// ErrSessionClosed is returned when the session ended while the
	// operation was in flight
	ErrSessionClosed = errors.New("proctoring session closed")

	// ErrCollaboratorUnavailable is returned when a vision provider failed
	// and the frame could not be analyzed at all
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// ValidationError wraps field-specific validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
