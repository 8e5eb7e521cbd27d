package validator_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/refdata/pkg/validator"
)

type createTax struct {
	Country string
	Rate    float64
}

type renameTax struct {
	Name string
}

func newTaxRegistry() *validator.Registry {
	reg := validator.NewRegistry()
	validator.RegisterRules(reg, func(ctx context.Context, cmd createTax) []validator.Rule {
		return []validator.Rule{
			validator.ValidCountryCode("country", cmd.Country),
			validator.Percentage("rate", cmd.Rate),
		}
	})
	return reg
}

func TestRegistry_Run(t *testing.T) {
	t.Parallel()

	reg := newTaxRegistry()
	ctx := context.Background()

	t.Run("returns failed rules in order", func(t *testing.T) {
		errs, err := reg.Run(ctx, createTax{Country: "fr", Rate: 120})
		require.NoError(t, err)
		assert.Equal(t, []string{"country", "rate"}, errs.Fields())
		assert.Len(t, errs.BySource(validator.SourceFieldRule), 2)
	})

	t.Run("pointer commands use the value rule set", func(t *testing.T) {
		errs, err := reg.Run(ctx, &createTax{Country: "FR", Rate: 120})
		require.NoError(t, err)
		assert.Equal(t, []string{"rate"}, errs.Fields())
	})

	t.Run("valid command", func(t *testing.T) {
		errs, err := reg.Run(ctx, createTax{Country: "FR", Rate: 20})
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("command without rule set", func(t *testing.T) {
		errs, err := reg.Run(ctx, renameTax{})
		require.NoError(t, err)
		assert.Nil(t, errs)

		errs, err = reg.Run(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("nil pointer command", func(t *testing.T) {
		var cmd *createTax
		errs, err := reg.Run(ctx, cmd)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := reg.Run(cctx, createTax{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRegistry_Has(t *testing.T) {
	t.Parallel()

	reg := newTaxRegistry()
	assert.True(t, reg.Has(createTax{}))
	assert.True(t, reg.Has(&createTax{}))
	assert.False(t, reg.Has(renameTax{}))
	assert.False(t, reg.Has(nil))
}

func TestRegisterRules_Duplicate(t *testing.T) {
	t.Parallel()

	reg := newTaxRegistry()
	assert.Panics(t, func() {
		validator.RegisterRules(reg, func(ctx context.Context, cmd *createTax) []validator.Rule { return nil })
	})
}

func TestRegistry_ConcurrentRun(t *testing.T) {
	t.Parallel()

	reg := newTaxRegistry()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(rate float64) {
			defer wg.Done()
			errs, err := reg.Run(context.Background(), createTax{Country: "DE", Rate: rate})
			assert.NoError(t, err)
			assert.Empty(t, errs)
		}(float64(i))
	}
	wg.Wait()
}
