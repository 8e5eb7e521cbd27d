package validator

import "errors"

// Common validation errors that can be used across the application.
var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrRuleSetAlreadyRegistered is raised when a second rule set is registered for the same command type.
	ErrRuleSetAlreadyRegistered = errors.New("rule set already registered for command")
)
