package command

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// commandNameCache maps reflect.Type to the derived command name.
var commandNameCache sync.Map

// getCommandName returns the struct name for named types, dereferencing
// pointers, and the type string otherwise.
func getCommandName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if name, ok := commandNameCache.Load(t); ok {
		return name.(string)
	}

	original := t
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	commandNameCache.Store(original, name)
	return name
}

// NameOf returns the command name of a payload.
func NameOf(cmd any) string {
	return getCommandName(reflect.TypeOf(cmd))
}

// chainMiddleware applies middleware so that the first one is the outermost.
func chainMiddleware(handler Handler, middleware []Middleware) Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

// safeHandle converts a handler panic into ErrHandlerPanicked.
func safeHandle(handler Handler, ctx context.Context, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanicked, handler.Name(), r)
		}
	}()
	return handler.Handle(ctx, payload)
}
