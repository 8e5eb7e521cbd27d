package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context, reporting false
// when the context carries nothing to log.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler adds extracted context attributes to every record.
// An extracted attribute is skipped when the record, or the handler via
// WithAttrs, already carries the same key.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
	preset     map[string]struct{}
}

// NewContextHandler wraps next so that every record gets the attributes
// produced by extractors. Nil extractors are ignored.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	var kept []ContextExtractor
	for _, ex := range extractors {
		if ex != nil {
			kept = append(kept, ex)
		}
	}
	if len(kept) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: kept}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	var present map[string]struct{}
	if rec.NumAttrs() > 0 {
		present = make(map[string]struct{}, rec.NumAttrs())
		rec.Attrs(func(a slog.Attr) bool {
			present[a.Key] = struct{}{}
			return true
		})
	}

	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok {
			continue
		}
		if _, dup := present[attr.Key]; dup {
			continue
		}
		if _, dup := h.preset[attr.Key]; dup {
			continue
		}
		rec.AddAttrs(attr)
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	preset := make(map[string]struct{}, len(h.preset)+len(attrs))
	for k := range h.preset {
		preset[k] = struct{}{}
	}
	for _, a := range attrs {
		preset[a.Key] = struct{}{}
	}
	return &contextHandler{
		next:       h.next.WithAttrs(attrs),
		extractors: h.extractors,
		preset:     preset,
	}
}

// WithGroup drops the preset keys: attributes added from here on live in
// the new group and cannot collide with keys outside it.
func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
	}
}
