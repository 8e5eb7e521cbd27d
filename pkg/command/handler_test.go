package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/refdata/pkg/command"
)

type CreateCountry struct {
	Code string
	Name string
}

type RenameCountry struct {
	Code string
	Name string
}

func TestNewHandlerFunc(t *testing.T) {
	t.Parallel()

	t.Run("derives command name from type", func(t *testing.T) {
		t.Parallel()

		h := command.NewHandlerFunc(func(ctx context.Context, cmd CreateCountry) error { return nil })
		assert.Equal(t, "CreateCountry", h.Name())
	})

	t.Run("pointer type uses element name", func(t *testing.T) {
		t.Parallel()

		h := command.NewHandlerFunc(func(ctx context.Context, cmd *CreateCountry) error { return nil })
		assert.Equal(t, "CreateCountry", h.Name())
	})

	t.Run("passes value and pointer payloads", func(t *testing.T) {
		t.Parallel()

		var got []CreateCountry
		h := command.NewHandlerFunc(func(ctx context.Context, cmd CreateCountry) error {
			got = append(got, cmd)
			return nil
		})

		require.NoError(t, h.Handle(context.Background(), CreateCountry{Code: "FR"}))
		require.NoError(t, h.Handle(context.Background(), &CreateCountry{Code: "DE"}))
		assert.Equal(t, []CreateCountry{{Code: "FR"}, {Code: "DE"}}, got)
	})

	t.Run("propagates handler errors", func(t *testing.T) {
		t.Parallel()

		expected := errors.New("store unavailable")
		h := command.NewHandlerFunc(func(ctx context.Context, cmd CreateCountry) error { return expected })
		assert.ErrorIs(t, h.Handle(context.Background(), CreateCountry{}), expected)
	})

	t.Run("rejects wrong payload type", func(t *testing.T) {
		t.Parallel()

		h := command.NewHandlerFunc(func(ctx context.Context, cmd CreateCountry) error { return nil })

		err := h.Handle(context.Background(), RenameCountry{})
		require.ErrorIs(t, err, command.ErrInvalidPayload)
		assert.Contains(t, err.Error(), "CreateCountry")

		var nilCmd *CreateCountry
		assert.ErrorIs(t, h.Handle(context.Background(), nilCmd), command.ErrInvalidPayload)
	})
}

func TestNewCommand(t *testing.T) {
	t.Parallel()

	a := command.NewCommand(CreateCountry{Code: "FR"})
	b := command.NewCommand(&CreateCountry{Code: "FR"})

	assert.Equal(t, "CreateCountry", a.Name)
	assert.Equal(t, "CreateCountry", b.Name)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, CreateCountry{Code: "FR"}, a.Payload)
}

func TestNameOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CreateCountry", command.NameOf(CreateCountry{}))
	assert.Equal(t, "CreateCountry", command.NameOf(&CreateCountry{}))
	assert.Equal(t, "map[string]interface {}", command.NameOf(map[string]any{}))
	assert.Equal(t, "", command.NameOf(nil))
}
