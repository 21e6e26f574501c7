package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a request fails field or schema validation.
	// Every ValidationError wraps it, so callers only need errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when a request carries a token that does
	// not match the expected digest.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a single violated rule. Its message is the
// human-readable text returned to clients with an InvalidRequest status.
type ValidationError struct {
	Field   string // Empty for schema-level rules
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// fieldError builds the message in the "field 'name' <rule>" form.
func fieldError(name, rule string) *ValidationError {
	return &ValidationError{
		Field:   name,
		Message: fmt.Sprintf("field '%s' %s", name, rule),
	}
}

// NewValidationError creates a schema-level validation error that is not tied
// to a single field.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
