package validation

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/refdata/pkg/contentguard"
)

// Option configures a Stage.
type Option func(*Stage)

// WithLogger sets the logger used for scanner-internal failures.
// The same logger is passed to the content scanner.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stage) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRuleRunner sets the declarative rule runner, typically a *validator.Registry.
func WithRuleRunner(r RuleRunner) Option {
	return func(s *Stage) {
		s.rules = r
	}
}

// WithMetrics enables prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Stage) {
		s.metrics = m
	}
}

// WithTracerProvider sets the provider used to create the stage tracer.
// Defaults to the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Stage) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithScannerOptions forwards options to the content scanner.
func WithScannerOptions(opts ...contentguard.ScannerOption) Option {
	return func(s *Stage) {
		s.scannerOpts = append(s.scannerOpts, opts...)
	}
}
