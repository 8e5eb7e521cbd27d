package contentguard

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/refdata/pkg/validator"
)

const (
	genericMessage = "contains forbidden characters"
	translationKey = "validation.forbidden_content"

	depthMessage        = "value nested too deeply to verify"
	depthTranslationKey = "validation.nested_too_deeply"
)

var readableNames = map[string]string{
	"\r": "carriage return",
	"\n": "line feed",
	"\t": "tab",
	" ":  "space",
}

// DescribeMatch renders a matched substring for humans.
// Whitespace control characters get names, other non-printable runes are
// shown as code points and everything else is returned as is.
func DescribeMatch(s string) string {
	if name, ok := readableNames[s]; ok {
		return name
	}
	if r, size := utf8.DecodeRuneInString(s); size == len(s) && !unicode.IsPrint(r) {
		return fmt.Sprintf("U+%04X", r)
	}
	return s
}

func newFailure(path string, matches []string, detailed bool) validator.ValidationError {
	if !detailed {
		return validator.ValidationError{
			Field:          path,
			Message:        genericMessage,
			Source:         validator.SourceContent,
			TranslationKey: translationKey,
			TranslationValues: map[string]any{
				"field": path,
			},
		}
	}

	described := make([]string, len(matches))
	for i, m := range matches {
		described[i] = DescribeMatch(m)
	}
	characters := strings.Join(described, ", ")

	return validator.ValidationError{
		Field:          path,
		Message:        genericMessage + ": " + characters,
		Source:         validator.SourceContent,
		TranslationKey: translationKey,
		TranslationValues: map[string]any{
			"field":      path,
			"characters": characters,
		},
	}
}

func newDepthFailure(path string, maxDepth int) validator.ValidationError {
	return validator.ValidationError{
		Field:          path,
		Message:        depthMessage,
		Source:         validator.SourceContent,
		TranslationKey: depthTranslationKey,
		TranslationValues: map[string]any{
			"field":     path,
			"max_depth": maxDepth,
		},
	}
}
