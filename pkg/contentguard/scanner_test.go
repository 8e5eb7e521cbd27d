package contentguard_test

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/refdata/pkg/contentguard"
	"github.com/dmitrymomot/refdata/pkg/validator"
)

func angleConfig() contentguard.Config {
	cfg := contentguard.DefaultConfig()
	cfg.ForbiddenPattern = `[<>]`
	return cfg
}

type person struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type taggedItem struct {
	Tags []string `json:"tags"`
}

type contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type apiCredentials struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type partner struct {
	Name    string          `json:"name"`
	Contact *contact        `json:"contact"`
	APIKey  *apiCredentials `json:"apiKey"`
	Notes   []string        `json:"notes,omitempty"`
}

type node struct {
	Name string `json:"name"`
	Next *node  `json:"next"`
}

type auditBase struct {
	Reason string `json:"reason"`
}

type embedding struct {
	auditBase
	Code string `json:"code"`
}

type label string

func TestScanner_Scan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reports forbidden character with its path", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		errs, err := s.Scan(ctx, person{Name: "Jo<hn"}, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "contains forbidden characters: <", errs[0].Message)
		assert.Equal(t, validator.SourceContent, errs[0].Source)
		assert.Equal(t, "validation.forbidden_content", errs[0].TranslationKey)
		assert.Equal(t, `"<"`, errs[0].TranslationValues["characters"])
	})

	t.Run("skips excluded fields", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		errs, err := s.Scan(ctx, person{Name: "John", Password: "a<b"}, "")
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("reports collection element index", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		errs, err := s.Scan(ctx, taggedItem{Tags: []string{"ok", "bad<tag", "fine"}}, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "tags[1]", errs[0].Field)
	})

	t.Run("uses generic message when details are disabled", func(t *testing.T) {
		cfg := angleConfig()
		cfg.DetailedMessages = false
		s := contentguard.NewScanner(cfg)

		errs, err := s.Scan(ctx, person{Name: "<b>"}, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "contains forbidden characters", errs[0].Message)
		assert.NotContains(t, errs[0].TranslationValues, "characters")
	})

	t.Run("deduplicates and sorts matches in one failure", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		errs, err := s.Scan(ctx, person{Name: "><<>>"}, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "contains forbidden characters: <, >", errs[0].Message)
	})

	t.Run("names whitespace control characters", func(t *testing.T) {
		s := contentguard.NewScanner(contentguard.DefaultConfig())

		errs, err := s.Scan(ctx, person{Name: "line\r\nbreak\t"}, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "contains forbidden characters: tab, line feed, carriage return", errs[0].Message)
	})

	t.Run("walks nested structs and pointers", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := partner{
			Name:    "Acme <Ltd>",
			Contact: &contact{Email: "ops@acme.test", Phone: "<555>"},
			Notes:   []string{"first", "second>"},
		}

		errs, err := s.Scan(ctx, &cmd, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "contact.phone", "notes[1]"}, errs.Fields())
	})

	t.Run("never inspects values below an excluded field", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := partner{
			Name:   "Acme",
			APIKey: &apiCredentials{Label: "<label>", Value: "<value>"},
		}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("applies exclusion to the current field only", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := struct {
			Settings struct {
				Token string `json:"token"`
				Label string `json:"label"`
			} `json:"settings"`
		}{}
		cmd.Settings.Token = "<t>"
		cmd.Settings.Label = "<l>"

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "settings.label", errs[0].Field)
	})

	t.Run("ignores non textual scalars", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())
		now := time.Now()

		cmd := struct {
			Count    int
			Rate     float64
			Active   bool
			At       time.Time
			AtPtr    *time.Time
			ID       uuid.UUID
			Raw      []byte
			Amount   *big.Int
			Ratio    big.Rat
			Timeout  time.Duration
			Callback func()
		}{
			Count:  3,
			Rate:   1.5,
			Active: true,
			At:     now,
			AtPtr:  &now,
			ID:     uuid.New(),
			Raw:    []byte("<raw>"),
			Amount: big.NewInt(42),
		}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("scans named string types", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := struct {
			Label label `json:"label"`
		}{Label: "<x>"}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "label", errs[0].Field)
	})

	t.Run("walks maps in key order and skips excluded keys", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := struct {
			Attributes map[string]string `json:"attributes"`
		}{Attributes: map[string]string{
			"region":    "<eu>",
			"city":      "<paris>",
			"secretRef": "<hidden>",
			"country":   "france",
		}}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"attributes[city]", "attributes[region]"}, errs.Fields())
	})

	t.Run("scans map keys", func(t *testing.T) {
		s := contentguard.NewScanner(contentguard.DefaultConfig())

		cmd := struct {
			Metadata map[string]string `json:"metadata"`
		}{Metadata: map[string]string{
			"<script>alert(1)</script>": "ok",
			"tier":                      "gold",
			"apiKey<":                   "ok",
		}}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "metadata[<script>alert(1)</script>]", errs[0].Field)
		assert.Equal(t, "contains forbidden characters: (, ), /, <, >", errs[0].Message)
	})

	t.Run("reports a key and its value separately", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := map[string]string{"<k>": "<v>"}

		errs, err := s.Scan(ctx, cmd, "attrs")
		require.NoError(t, err)
		assert.Equal(t, []string{"attrs[<k>]", "attrs[<k>]"}, []string{errs[0].Field, errs[1].Field})
		assert.Len(t, errs, 2)
	})

	t.Run("walks values behind interfaces", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := struct {
			Payload any `json:"payload"`
		}{Payload: []any{"ok", map[string]any{"value": "<x>"}, 10}}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "payload[1][value]", errs[0].Field)
	})

	t.Run("falls back to Go field names", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := struct {
			Title   string
			Ignored string `json:"-"`
		}{Title: "<t>", Ignored: "<i>"}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Title", "Ignored"}, errs.Fields())
	})

	t.Run("flattens embedded structs", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		errs, err := s.Scan(ctx, embedding{auditBase: auditBase{Reason: "<r>"}, Code: "<c>"}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"reason", "code"}, errs.Fields())
	})

	t.Run("ignores unexported fields", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := struct {
			name string
		}{name: "<hidden>"}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("terminates on reference cycles", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		n := &node{Name: "<loop>"}
		n.Next = n

		errs, err := s.Scan(ctx, n, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
	})

	t.Run("terminates on self containing slices", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		items := make([]any, 2)
		items[0] = "<x>"
		items[1] = items

		errs, err := s.Scan(ctx, items, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"[0]"}, errs.Fields())
	})

	t.Run("rescans shared references in separate branches", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		shared := &contact{Email: "<shared>"}
		cmd := struct {
			Primary   *contact `json:"primary"`
			Secondary *contact `json:"secondary"`
		}{Primary: shared, Secondary: shared}

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"primary.email", "secondary.email"}, errs.Fields())
	})

	t.Run("rejects values nested below max depth", func(t *testing.T) {
		cfg := angleConfig()
		cfg.MaxDepth = 1
		s := contentguard.NewScanner(cfg)

		type leaf struct {
			Value string `json:"value"`
		}
		cmd := struct {
			Top   string `json:"top"`
			Inner struct {
				Deep  string   `json:"deep"`
				Leaf  leaf     `json:"leaf"`
				Tags  []string `json:"tags"`
				Empty []string `json:"empty"`
				Count int      `json:"count"`
			} `json:"inner"`
		}{Top: "<top>"}
		cmd.Inner.Deep = "<deep>"
		cmd.Inner.Leaf.Value = "clean"
		cmd.Inner.Tags = []string{"clean"}
		cmd.Inner.Count = 3

		errs, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"top", "inner.deep", "inner.leaf", "inner.tags"}, errs.Fields())
		assert.Equal(t, "value nested too deeply to verify", errs[2].Message)
		assert.Equal(t, validator.SourceContent, errs[2].Source)
		assert.Equal(t, "validation.nested_too_deeply", errs[2].TranslationKey)
	})

	t.Run("reports forbidden content beyond the default depth", func(t *testing.T) {
		s := contentguard.NewScanner(contentguard.DefaultConfig())

		type node struct {
			Name string `json:"name"`
			Next *node  `json:"next"`
		}
		head := &node{Name: "n0"}
		tail := head
		for i := 1; i < 71; i++ {
			tail.Next = &node{Name: fmt.Sprintf("n%d", i)}
			tail = tail.Next
		}
		tail.Name = "<script>"

		errs, err := s.Scan(ctx, head, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "value nested too deeply to verify", errs[0].Message)
		assert.True(t, strings.HasPrefix(errs[0].Field, "next.next."))
	})

	t.Run("uses the given root path", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		errs, err := s.Scan(ctx, "a<b", "comment")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "comment", errs[0].Field)
	})

	t.Run("nil value produces nothing", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		errs, err := s.Scan(ctx, nil, "")
		require.NoError(t, err)
		assert.Nil(t, errs)

		var p *partner
		errs, err = s.Scan(ctx, p, "")
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		errs, err := s.Scan(cctx, person{Name: "<x>"}, "")
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, errs)
	})

	t.Run("returns pattern error", func(t *testing.T) {
		cfg := angleConfig()
		cfg.ForbiddenPattern = "("
		s := contentguard.NewScanner(cfg)

		_, err := s.Scan(ctx, person{Name: "<x>"}, "")
		require.ErrorIs(t, err, contentguard.ErrInvalidPattern)
	})

	t.Run("is deterministic", func(t *testing.T) {
		s := contentguard.NewScanner(contentguard.DefaultConfig())

		cmd := partner{
			Name:    "a;b",
			Contact: &contact{Email: "x@y", Phone: "(555)"},
			Notes:   []string{"n1", "n|2", "n#3"},
		}

		first, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		second, err := s.Scan(ctx, cmd, "")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, []string{"name", "contact.email", "contact.phone", "notes[1]", "notes[2]"}, first.Fields())
	})

	t.Run("does not mutate the value", func(t *testing.T) {
		s := contentguard.NewScanner(angleConfig())

		cmd := partner{Name: "<x>", Notes: []string{"<y>"}}
		_, err := s.Scan(ctx, &cmd, "")
		require.NoError(t, err)
		assert.Equal(t, "<x>", cmd.Name)
		assert.Equal(t, []string{"<y>"}, cmd.Notes)
	})

	t.Run("shares an explicit matcher", func(t *testing.T) {
		m := contentguard.NewMatcher(`x`)
		s := contentguard.NewScanner(angleConfig(), contentguard.WithMatcher(m))
		assert.Same(t, m, s.Matcher())

		errs, err := s.Scan(ctx, person{Name: "<x>"}, "")
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "contains forbidden characters: x", errs[0].Message)
	})
}

type opaqueCode struct{ raw string }

func (c opaqueCode) String() string { return c.raw }

type visibleCode struct{ Raw string }

func (c visibleCode) String() string { return c.Raw }

func TestScanner_StringerStructs(t *testing.T) {
	t.Parallel()

	s := contentguard.NewScanner(contentguard.DefaultConfig())

	t.Run("opaque stringer is a scalar", func(t *testing.T) {
		errs, err := s.Scan(context.Background(), struct{ Code opaqueCode }{opaqueCode{"<x>"}}, "")
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("stringer with exported fields is descended", func(t *testing.T) {
		errs, err := s.Scan(context.Background(), struct{ Code visibleCode }{visibleCode{"<x>"}}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Code.Raw"}, errs.Fields())
	})
}
