package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/refdata/pkg/command"
)

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		assert.Empty(t, command.CommandID(ctx))
		assert.Empty(t, command.CommandName(ctx))
		assert.True(t, command.CommandTime(ctx).IsZero())

		for _, ex := range command.LogExtractors() {
			_, ok := ex(ctx)
			assert.False(t, ok)
		}
	})

	t.Run("with command meta", func(t *testing.T) {
		now := time.Now()
		ctx := command.WithCommandMeta(context.Background(), command.Command{
			ID:        "id-1",
			Name:      "CreateCountry",
			CreatedAt: now,
		})

		assert.Equal(t, "id-1", command.CommandID(ctx))
		assert.Equal(t, "CreateCountry", command.CommandName(ctx))
		assert.Equal(t, now, command.CommandTime(ctx))

		extractors := command.LogExtractors()
		attr, ok := extractors[0](ctx)
		assert.True(t, ok)
		assert.Equal(t, "command_id", attr.Key)
		attr, ok = extractors[1](ctx)
		assert.True(t, ok)
		assert.Equal(t, "CreateCountry", attr.Value.String())
	})
}
