package contentguard

import (
	"strings"

	"golang.org/x/text/cases"
)

// ExclusionPolicy decides which field names are exempt from scanning.
// Matching is a case-insensitive substring test against the single field
// name being descended into, never the accumulated path.
type ExclusionPolicy struct {
	substrings []string
}

// NewExclusionPolicy creates a policy for the given substrings.
// Empty entries are ignored.
func NewExclusionPolicy(substrings []string) *ExclusionPolicy {
	folded := make([]string, 0, len(substrings))
	for _, s := range substrings {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		folded = append(folded, fold(s))
	}
	return &ExclusionPolicy{substrings: folded}
}

// IsExcluded reports whether fieldName contains any excluded substring.
func (p *ExclusionPolicy) IsExcluded(fieldName string) bool {
	if p == nil || len(p.substrings) == 0 || fieldName == "" {
		return false
	}
	name := fold(fieldName)
	for _, s := range p.substrings {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// fold applies Unicode case folding. A Caser keeps internal state, so a new
// one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
