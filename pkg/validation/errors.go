package validation

import "errors"

var (
	// ErrRuleRunner wraps infrastructure failures of the rule runner.
	// It is not a validation failure and carries no field details.
	ErrRuleRunner = errors.New("validation: rule runner failed")
)
