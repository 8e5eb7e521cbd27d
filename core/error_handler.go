package core

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/refdata/pkg/logger"
	"github.com/dmitrymomot/refdata/pkg/requestid"
)

// NewErrorHandler returns an ErrorHandler that logs the failure and renders
// it with JSONError. Client errors are logged at warn, server errors at error.
// Configure this once in main.go and pass it to every wrapped handler.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status := StatusOf(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
