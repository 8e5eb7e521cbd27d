package core

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/refdata/pkg/validator"
)

// ValidationError represents field validation errors keyed by field name or
// property path. It's based on url.Values to leverage built-in string slice
// handling.
type ValidationError url.Values

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, field := range slices.Sorted(maps.Keys(e)) {
		if messages := e[field]; len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}

	return "validation error: " + strings.Join(parts, ", ")
}

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// NewValidationErrorFrom groups validator failures by field or path.
// Messages for the same key keep their original order.
func NewValidationErrorFrom(errs validator.ValidationErrors) ValidationError {
	ve := make(ValidationError, len(errs))
	for _, err := range errs {
		ve.Add(err.Field, err.Message)
	}
	return ve
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
