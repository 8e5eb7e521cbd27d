package contentguard_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dmitrymomot/refdata/pkg/contentguard"
)

var forbiddenChars = []string{
	"<", ">", "&", `"`, "'", "/", `\`, "{", "}", "[", "]", "(", ")", ";", ":", "=",
	"+", "*", "?", "%", "#", "@", "!", "$", "^", "`", "~", "|", "\r", "\n", "\t",
}

func cleanString() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z0-9 ,._-]{0,16}`)
}

func withForbidden(t *rapid.T, base string) string {
	c := rapid.SampledFrom(forbiddenChars).Draw(t, "forbidden")
	at := rapid.IntRange(0, len(base)).Draw(t, "at")
	return base[:at] + c + base[at:]
}

func randomCase(t *rapid.T, s string, label string) string {
	var b strings.Builder
	for i, r := range s {
		if rapid.Bool().Draw(t, fmt.Sprintf("%s_upper_%d", label, i)) {
			b.WriteString(strings.ToUpper(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestScanner_Properties(t *testing.T) {
	s := contentguard.NewScanner(contentguard.DefaultConfig())
	ctx := context.Background()

	t.Run("clean strings never fail", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			tags := rapid.SliceOf(cleanString()).Draw(t, "tags")

			errs, err := s.Scan(ctx, taggedItem{Tags: tags}, "")
			require.NoError(t, err)
			require.Empty(t, errs)
		})
	})

	t.Run("a forbidden character is reported at its index", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			tags := rapid.SliceOfN(cleanString(), 1, 10).Draw(t, "tags")
			i := rapid.IntRange(0, len(tags)-1).Draw(t, "index")
			tags[i] = withForbidden(t, tags[i])

			errs, err := s.Scan(ctx, taggedItem{Tags: tags}, "")
			require.NoError(t, err)
			require.Len(t, errs, 1)
			require.Equal(t, fmt.Sprintf("tags[%d]", i), errs[0].Field)
		})
	})

	t.Run("scanning is deterministic", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			tags := rapid.SliceOf(rapid.String()).Draw(t, "tags")
			name := rapid.String().Draw(t, "name")
			cmd := partner{Name: name, Notes: tags, Contact: &contact{Email: name}}

			first, err := s.Scan(ctx, cmd, "")
			require.NoError(t, err)
			second, err := s.Scan(ctx, cmd, "")
			require.NoError(t, err)
			require.Equal(t, first, second)
		})
	})

	t.Run("excluded keys are never reported in any letter case", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			sub := rapid.SampledFrom(contentguard.DefaultExcludedPathSubstrings).Draw(t, "substring")
			prefix := rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "prefix")
			key := randomCase(t, prefix+sub, "key")
			value := withForbidden(t, cleanString().Draw(t, "value"))

			cmd := map[string]any{
				key: map[string]any{"nested": value, "list": []string{value}},
			}

			errs, err := s.Scan(ctx, cmd, "")
			require.NoError(t, err)
			require.Empty(t, errs)
		})
	})
}
