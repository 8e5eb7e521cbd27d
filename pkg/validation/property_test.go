package validation_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dmitrymomot/refdata/pkg/contentguard"
	"github.com/dmitrymomot/refdata/pkg/validation"
	"github.com/dmitrymomot/refdata/pkg/validator"
)

type staticRunner validator.ValidationErrors

func (r staticRunner) Run(context.Context, any) (validator.ValidationErrors, error) {
	return validator.ValidationErrors(r), nil
}

func genRuleFailures() *rapid.Generator[validator.ValidationErrors] {
	return rapid.Custom(func(t *rapid.T) validator.ValidationErrors {
		n := rapid.IntRange(0, 4).Draw(t, "rule_failures")
		var errs validator.ValidationErrors
		for i := range n {
			errs = append(errs, ruleFailure(fmt.Sprintf("field%d", i), "invalid"))
		}
		return errs
	})
}

func genAgency() *rapid.Generator[CreateAgency] {
	return rapid.Custom(func(t *rapid.T) CreateAgency {
		return CreateAgency{
			Name:     rapid.String().Draw(t, "name"),
			Code:     rapid.String().Draw(t, "code"),
			Tags:     rapid.SliceOf(rapid.String()).Draw(t, "tags"),
			APIToken: rapid.String().Draw(t, "token"),
		}
	})
}

func TestStage_Properties(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled stage reports exactly the rule failures", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			rules := genRuleFailures().Draw(t, "rules")
			cmd := genAgency().Draw(t, "cmd")

			cfg := contentguard.DefaultConfig()
			cfg.Enabled = false
			stage := validation.New(cfg, validation.WithRuleRunner(staticRunner(rules)))

			errs, err := stage.Validate(ctx, cmd)
			require.NoError(t, err)
			require.Len(t, errs, len(rules))
			for i := range errs {
				require.Equal(t, rules[i].Field, errs[i].Field)
				require.Equal(t, validator.SourceFieldRule, errs[i].Source)
			}
		})
	})

	t.Run("rule failures precede content failures", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			rules := genRuleFailures().Draw(t, "rules")
			cmd := genAgency().Draw(t, "cmd")

			stage := validation.New(contentguard.DefaultConfig(), validation.WithRuleRunner(staticRunner(rules)))

			errs, err := stage.Validate(ctx, cmd)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(errs), len(rules))
			for i, e := range errs {
				if i < len(rules) {
					require.Equal(t, validator.SourceFieldRule, e.Source)
				} else {
					require.Equal(t, validator.SourceContent, e.Source)
					require.NotEqual(t, "apiToken", e.Field)
				}
			}
		})
	})

	t.Run("validation is deterministic", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			rules := genRuleFailures().Draw(t, "rules")
			cmd := genAgency().Draw(t, "cmd")

			stage := validation.New(contentguard.DefaultConfig(), validation.WithRuleRunner(staticRunner(rules)))

			first, err := stage.Validate(ctx, cmd)
			require.NoError(t, err)
			second, err := stage.Validate(ctx, cmd)
			require.NoError(t, err)
			require.Equal(t, first, second)
		})
	})
}
