package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/refdata/pkg/logger"
)

// LoggerExtractor adds the request ID to log records as "request_id".
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}
