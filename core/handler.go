package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/refdata/binder"
)

// HandlerFunc provides type-safe HTTP request handling.
// R is the request type populated by the configured binders.
//
//	create := core.HandlerFunc[refdata.CreateCountry](
//		func(ctx core.Context, req refdata.CreateCountry) core.Response {
//			country, err := svc.CreateCountry(ctx, req)
//			if err != nil {
//				return core.JSONError(err)
//			}
//			return core.JSON(country, core.WithJSONStatus(http.StatusCreated))
//		},
//	)
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
// Implementations should set headers, status code, and write body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses HTTP requests into typed values.
type Bind func(r *http.Request, v any) error

// ErrorHandler handles errors from binding or rendering.
type ErrorHandler func(ctx Context, err error)

// Decorator wraps a HandlerFunc to add cross-cutting functionality.
// The first decorator in the list is the outermost wrapper.
type Decorator[R any] func(HandlerFunc[R]) HandlerFunc[R]

// WrapOption configures the Wrap function.
type WrapOption[R any] func(*wrapConfig[R])

type wrapConfig[R any] struct {
	binders      []Bind
	errorHandler ErrorHandler
	decorators   []Decorator[R]
}

// WithBinder replaces the configured binders with b.
func WithBinder[R any](b Bind) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if b != nil {
			c.binders = []Bind{b}
		}
	}
}

// WithBinders appends binders that will be applied in order.
// Each binder should process only its specific struct tags.
//
//	r.Put("/countries/{id}", core.Wrap(update,
//		core.WithBinders[refdata.UpdateCountry](
//			binder.Path(chi.URLParam),
//			binder.BindJSON(),
//		),
//	))
func WithBinders[R any](binders ...Bind) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.binders = append(c.binders, binders...)
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler[R any](h ErrorHandler) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithDecorators adds decorators to wrap the handler.
func WithDecorators[R any](decorators ...Decorator[R]) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// DefaultErrorHandler renders err with JSONError.
func DefaultErrorHandler(ctx Context, err error) {
	_ = JSONError(err).Render(ctx.ResponseWriter(), ctx.Request())
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
// Binding failures are translated to client errors before they reach the
// error handler; see BindError.
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption[R]) http.HandlerFunc {
	cfg := &wrapConfig[R]{errorHandler: DefaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	// Apply decorators in reverse order so first decorator is outermost
	final := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		final = cfg.decorators[i](final)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				cfg.errorHandler(ctx, BindError(err))
				return
			}
		}

		response := final(ctx, req)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}

// BindError wraps a binder failure with the matching client HTTPError.
func BindError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, binder.ErrBodyTooLarge):
		return fmt.Errorf("%w: %w", ErrRequestEntityTooLarge, err)
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
	default:
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
}
