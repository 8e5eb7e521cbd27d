package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/refdata/pkg/command"
	"github.com/dmitrymomot/refdata/pkg/contentguard"
	"github.com/dmitrymomot/refdata/pkg/logger"
	"github.com/dmitrymomot/refdata/pkg/validator"
)

const tracerName = "github.com/dmitrymomot/refdata/pkg/validation"

// RuleRunner evaluates the declarative per-field rules of a command.
// Commands without rules yield no failures. A returned error means the
// runner itself failed, not that the command is invalid.
type RuleRunner interface {
	Run(ctx context.Context, cmd any) (validator.ValidationErrors, error)
}

// Stage validates commands before their handler runs.
type Stage struct {
	enabled     bool
	scanner     *contentguard.Scanner
	scannerOpts []contentguard.ScannerOption
	rules       RuleRunner
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
}

// New creates a stage for cfg. cfg is copied; the stage never changes it.
func New(cfg contentguard.Config, opts ...Option) *Stage {
	s := &Stage{
		enabled: cfg.Enabled,
		logger:  logger.Discard(),
		tracer:  otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	scannerOpts := append([]contentguard.ScannerOption{contentguard.WithLogger(s.logger)}, s.scannerOpts...)
	s.scanner = contentguard.NewScanner(cfg, scannerOpts...)
	return s
}

// Validate runs the rule runner and, when enabled, the content scanner on
// cmd and returns their failures: rule failures first, content failures
// after. The error is non-nil only for a cancelled context or a rule runner
// failure; content scanner failures are logged and count as no failures.
func (s *Stage) Validate(ctx context.Context, cmd any) (validator.ValidationErrors, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := command.NameOf(cmd)
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "validation.validate",
		trace.WithAttributes(
			attribute.String("command.name", name),
			attribute.Bool("validation.content_scan", s.enabled),
		))
	defer span.End()

	var ruleErrs, contentErrs validator.ValidationErrors

	g, gctx := errgroup.WithContext(ctx)
	if s.rules != nil {
		g.Go(func() (err error) {
			ruleErrs, err = s.runRules(gctx, cmd)
			return err
		})
	}
	if s.enabled {
		g.Go(func() (err error) {
			contentErrs, err = s.scan(gctx, name, cmd)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.ObserveResult(name, OutcomeError, nil, time.Since(start))
		return nil, err
	}

	errs := slices.Concat(ruleErrs, contentErrs)

	span.SetAttributes(
		attribute.Int("validation.rule_failures", len(ruleErrs)),
		attribute.Int("validation.content_failures", len(contentErrs)),
	)

	if len(errs) == 0 {
		s.metrics.ObserveResult(name, OutcomePassed, nil, time.Since(start))
		return nil, nil
	}

	span.AddEvent("command rejected", trace.WithAttributes(
		attribute.StringSlice("validation.fields", errs.Fields()),
	))
	s.metrics.ObserveResult(name, OutcomeRejected, errs, time.Since(start))
	return errs, nil
}

// Middleware rejects invalid commands with validator.ValidationErrors
// before next is invoked. Valid commands reach next unchanged and its
// result is returned as is.
func (s *Stage) Middleware() command.Middleware {
	return command.MiddlewareFunc(func(ctx context.Context, payload any, next command.Handler) error {
		errs, err := s.Validate(ctx, payload)
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			s.logger.InfoContext(ctx, "command rejected",
				logger.Command(next.Name()),
				logger.Failures(len(errs)))
			return errs
		}
		return next.Handle(ctx, payload)
	})
}

func (s *Stage) runRules(ctx context.Context, cmd any) (errs validator.ValidationErrors, err error) {
	defer func() {
		if r := recover(); r != nil {
			errs, err = nil, fmt.Errorf("%w: panic: %v", ErrRuleRunner, r)
		}
	}()

	errs, err = s.rules.Run(ctx, cmd)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrRuleRunner, err)
	}
	return errs.WithSource(validator.SourceFieldRule), nil
}

func (s *Stage) scan(ctx context.Context, name string, cmd any) (validator.ValidationErrors, error) {
	errs, err := s.scanner.Scan(ctx, cmd, "")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "content scan failed, treating command as clean",
			logger.Command(name),
			logger.Error(err))
		s.metrics.IncScanError(name)
		return nil, nil
	}
	return errs.WithSource(validator.SourceContent), nil
}
