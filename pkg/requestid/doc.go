// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reuses a valid client supplied X-Request-ID header or generates a
// UUID, stores it in the request context, and echoes it back in the response.
// FromContext reads it back; LoggerExtractor adds it to every log record:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
//
// The refdata service also reuses the request ID as the ID of the command it
// dispatches, so request and command log records share one identifier.
package requestid
