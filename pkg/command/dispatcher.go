package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/refdata/pkg/logger"
)

// Dispatcher routes commands to their handlers synchronously, in the
// caller's goroutine, through the configured middleware.
//
//	dispatcher := command.NewDispatcher(
//		command.WithLogger(log),
//		command.WithMiddleware(
//			command.LoggingMiddleware(log),
//			stage.Middleware(),
//		),
//	)
//	dispatcher.Register(command.NewHandlerFunc(svc.CreateCountry))
//	err := dispatcher.Dispatch(ctx, refdata.CreateCountry{Code: "FR", Name: "France"})
type Dispatcher struct {
	mu         sync.RWMutex
	handlers   map[string]Handler
	middleware []Middleware
	logger     *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for the dispatcher.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMiddleware appends middleware applied to every handler, the first
// one being the outermost.
func WithMiddleware(middleware ...Middleware) Option {
	return func(d *Dispatcher) {
		d.middleware = append(d.middleware, middleware...)
	}
}

// NewDispatcher creates a dispatcher with the given options.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds a handler. Panics if a handler is already registered for
// the same command name.
func (d *Dispatcher) Register(handlers ...Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, h := range handlers {
		name := h.Name()
		if _, exists := d.handlers[name]; exists {
			panic(fmt.Sprintf("%s: %s", ErrDuplicateHandler, name))
		}
		d.handlers[name] = h
	}
}

// Handlers returns the registered command names, sorted.
func (d *Dispatcher) Handlers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch executes cmd with its registered handler and returns the
// handler's error. The context passed to middleware and handler carries
// the command metadata (see CommandID); an ID already present in ctx is
// reused. Handler panics are returned as ErrHandlerPanicked.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd any) error {
	if cmd == nil {
		return ErrNilCommand
	}

	meta := NewCommand(cmd)
	if id := CommandID(ctx); id != "" {
		meta.ID = id
	}

	handler, ok := d.getHandler(meta.Name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrHandlerNotFound, meta.Name)
	}

	ctx = WithCommandMeta(ctx, meta)
	err := safeHandle(handler, ctx, cmd)
	if errors.Is(err, ErrHandlerPanicked) {
		d.logger.ErrorContext(ctx, "command handler panicked", logger.Error(err))
	}
	return err
}

func (d *Dispatcher) getHandler(name string) (Handler, bool) {
	d.mu.RLock()
	handler, exists := d.handlers[name]
	middleware := d.middleware
	d.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if len(middleware) > 0 {
		handler = chainMiddleware(handler, middleware)
	}
	return handler, true
}
