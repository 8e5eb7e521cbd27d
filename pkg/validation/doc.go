// Package validation implements the validation stage that runs before every
// command handler.
//
// A Stage performs two independent checks on a command:
//
//  1. the declarative per-field rules registered for the command type
//     (RuleRunner, usually a *validator.Registry), and
//  2. when contentguard.Config.Enabled is set, a scan of the whole command
//     value for forbidden content (contentguard.Scanner).
//
// Both run concurrently. Their failures are merged, rule failures first,
// into a single validator.ValidationErrors. Used as command middleware, a
// non-empty result rejects the command and the handler is never called:
//
//	stage := validation.New(cfg,
//		validation.WithRuleRunner(registry),
//		validation.WithLogger(log),
//		validation.WithMetrics(validation.NewMetrics(prometheus.DefaultRegisterer)),
//	)
//	dispatcher := command.NewDispatcher(command.WithMiddleware(stage.Middleware()))
//
// Internal failures of the content scanner (an invalid pattern, a panic
// while reading a value) are logged and count as no content failures.
// Failures of the rule runner itself are returned as ErrRuleRunner.
package validation
