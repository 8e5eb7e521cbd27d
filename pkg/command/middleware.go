package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/refdata/pkg/logger"
)

// Middleware wraps a Handler to add cross-cutting behavior such as logging
// or validation.
type Middleware func(next Handler) Handler

// MiddlewareFunc builds a Middleware from a plain function. The returned
// handler keeps the name of next.
func MiddlewareFunc(fn func(ctx context.Context, payload any, next Handler) error) Middleware {
	return func(next Handler) Handler {
		return &middlewareHandler{
			name: next.Name(),
			fn: func(ctx context.Context, payload any) error {
				return fn(ctx, payload, next)
			},
		}
	}
}

type middlewareHandler struct {
	name string
	fn   func(ctx context.Context, payload any) error
}

func (h *middlewareHandler) Name() string {
	return h.name
}

func (h *middlewareHandler) Handle(ctx context.Context, payload any) error {
	return h.fn(ctx, payload)
}

// LoggingMiddleware logs command execution with its duration and outcome.
//
//	dispatcher := command.NewDispatcher(
//		command.WithMiddleware(command.LoggingMiddleware(log)),
//	)
func LoggingMiddleware(log *slog.Logger) Middleware {
	return MiddlewareFunc(func(ctx context.Context, payload any, next Handler) error {
		start := time.Now()
		name := next.Name()

		log.DebugContext(ctx, "command started", logger.Command(name))

		err := next.Handle(ctx, payload)
		duration := time.Since(start)

		if err != nil {
			log.WarnContext(ctx, "command failed",
				logger.Command(name),
				logger.Duration(duration),
				logger.Error(err))
			return err
		}

		log.InfoContext(ctx, "command completed",
			logger.Command(name),
			logger.Duration(duration))
		return nil
	})
}
