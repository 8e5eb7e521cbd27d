package command

import "errors"

var (
	// ErrHandlerNotFound is returned when a command has no registered handler.
	ErrHandlerNotFound = errors.New("no handler registered for command")

	// ErrDuplicateHandler is used in the panic raised by Register for a second handler of a command.
	ErrDuplicateHandler = errors.New("handler already registered for command")

	// ErrInvalidPayload is returned when a handler receives a payload of the wrong type.
	ErrInvalidPayload = errors.New("invalid command payload")

	// ErrHandlerPanicked wraps a panic recovered from a handler.
	ErrHandlerPanicked = errors.New("command handler panicked")

	// ErrNilCommand is returned when Dispatch receives a nil payload.
	ErrNilCommand = errors.New("nil command")
)
