package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no live session matches the interview ID
	ErrNotFound = errors.New("interview not found")

	// ErrAlreadyExists is returned when starting a session under an ID that
	// is already live
	ErrAlreadyExists = errors.New("interview already exists")

	// ErrInvalidTransition is returned when an operation would move the
	// session to a phase it cannot reach from its current one
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrAlreadyAnswered is returned when a question receives a second answer
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrSessionClosed is returned when the session completed or was
	// cancelled while the operation was in flight
	ErrSessionClosed = errors.New("session closed")

	// ErrCollaboratorUnavailable is returned when a required external
	// collaborator failed and no degraded result is possible
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
