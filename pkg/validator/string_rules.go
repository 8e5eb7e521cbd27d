package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return newRule(field, "field is required", "validation.required", nil, func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MinLenString validates the length of a string in characters, not bytes.
func MinLenString(field, value string, min int) Rule {
	return newRule(field,
		fmt.Sprintf("must be at least %d characters long", min),
		"validation.min_length",
		map[string]any{"min": min},
		func() bool { return utf8.RuneCountInString(value) >= min })
}

// MaxLenString validates the length of a string in characters, not bytes.
func MaxLenString(field, value string, max int) Rule {
	return newRule(field,
		fmt.Sprintf("must be at most %d characters long", max),
		"validation.max_length",
		map[string]any{"max": max},
		func() bool { return utf8.RuneCountInString(value) <= max })
}

func LenString(field, value string, exact int) Rule {
	return newRule(field,
		fmt.Sprintf("must be exactly %d characters long", exact),
		"validation.exact_length",
		map[string]any{"length": exact},
		func() bool { return utf8.RuneCountInString(value) == exact })
}

// Short aliases for the string rules.

func Required(field, value string) Rule {
	return RequiredString(field, value)
}

func MinLen(field, value string, min int) Rule {
	return MinLenString(field, value, min)
}

func MaxLen(field, value string, max int) Rule {
	return MaxLenString(field, value, max)
}
