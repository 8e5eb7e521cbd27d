package validator

import (
	"errors"
	"fmt"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Source tags where a validation failure came from.
type Source string

const (
	// SourceFieldRule marks failures produced by declarative per-field rules.
	SourceFieldRule Source = "field-rule"
	// SourceContent marks failures produced by the forbidden content scanner.
	SourceContent Source = "content"
)

// ValidationError represents a single validation error with translation support.
// Field holds either a plain field name or a property path such as "tiers[1].label".
type ValidationError struct {
	Field             string
	Message           string
	Source            Source
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
// Order is preserved; a non-empty collection rejects the command as a whole.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationErrors.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// BySource returns the errors produced by the given source, in order.
func (ve ValidationErrors) BySource(src Source) ValidationErrors {
	var out ValidationErrors
	for _, err := range ve {
		if err.Source == src {
			out = append(out, err)
		}
	}
	return out
}

// WithSource returns a copy with every error tagged by src.
// Errors that already carry a source keep it.
func (ve ValidationErrors) WithSource(src Source) ValidationErrors {
	if len(ve) == 0 {
		return nil
	}
	out := make(ValidationErrors, len(ve))
	for i, err := range ve {
		if err.Source == "" {
			err.Source = src
		}
		out[i] = err
	}
	return out
}

// Grouped returns messages keyed by field or path, the shape rendered to API clients.
func (ve ValidationErrors) Grouped() map[string][]string {
	if len(ve) == 0 {
		return nil
	}
	grouped := make(map[string][]string, len(ve))
	for _, err := range ve {
		grouped[err.Field] = append(grouped[err.Field], err.Message)
	}
	return grouped
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes multiple validation rules and returns any validation errors.
func Apply(rules ...Rule) error {
	var errors ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errors = append(errors, rule.Error)
		}
	}

	if errors.IsEmpty() {
		return nil
	}

	return errors
}

// Collect runs the rules and returns the failed ones tagged as field-rule failures.
func Collect(rules ...Rule) ValidationErrors {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			err := rule.Error
			err.Source = SourceFieldRule
			errs = append(errs, err)
		}
	}
	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
