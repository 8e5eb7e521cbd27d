package contentguard

import (
	"regexp"
	"slices"
	"sync"
)

// Matcher finds forbidden substrings in text.
// The pattern is compiled on first use and reused afterwards; a Matcher is
// safe for concurrent use.
type Matcher struct {
	pattern string

	once sync.Once
	re   *regexp.Regexp
	err  error
}

// NewMatcher creates a matcher for the given pattern without compiling it.
// An empty pattern never matches.
func NewMatcher(pattern string) *Matcher {
	return &Matcher{pattern: pattern}
}

func (m *Matcher) compile() {
	m.once.Do(func() {
		if m.pattern == "" {
			return
		}
		m.re, m.err = regexp.Compile(m.pattern)
	})
}

// Err reports the compilation error of the pattern, if any.
func (m *Matcher) Err() error {
	m.compile()
	return m.err
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Matches returns the distinct forbidden substrings found in text, sorted.
// Empty matches are ignored. A pattern that failed to compile matches nothing.
func (m *Matcher) Matches(text string) []string {
	m.compile()
	if m.re == nil || text == "" {
		return nil
	}

	found := m.re.FindAllString(text, -1)
	if len(found) == 0 {
		return nil
	}

	out := found[:0]
	for _, s := range found {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}

	slices.Sort(out)
	return slices.Compact(out)
}
