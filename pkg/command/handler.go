package command

import (
	"context"
	"fmt"
	"reflect"
)

// Handler processes one command type.
type Handler interface {
	// Name returns the command name this handler processes.
	Name() string

	// Handle executes the command. The payload must be of the type
	// expected by the handler.
	Handle(ctx context.Context, payload any) error
}

// HandlerFunc is a type-safe Handler for commands of type T.
type HandlerFunc[T any] struct {
	name string
	fn   func(context.Context, T) error
}

// NewHandlerFunc creates a handler whose command name is derived from T.
//
//	h := command.NewHandlerFunc(func(ctx context.Context, cmd CreateCountry) error {
//		return store.InsertCountry(ctx, cmd.Code, cmd.Name)
//	})
func NewHandlerFunc[T any](fn func(context.Context, T) error) *HandlerFunc[T] {
	return &HandlerFunc[T]{
		name: getCommandName(reflect.TypeFor[T]()),
		fn:   fn,
	}
}

func (h *HandlerFunc[T]) Name() string {
	return h.name
}

// Handle accepts T or a non-nil *T.
func (h *HandlerFunc[T]) Handle(ctx context.Context, payload any) error {
	switch cmd := payload.(type) {
	case T:
		return h.fn(ctx, cmd)
	case *T:
		if cmd != nil {
			return h.fn(ctx, *cmd)
		}
	}
	return fmt.Errorf("%w: command %s, got %T", ErrInvalidPayload, h.name, payload)
}
