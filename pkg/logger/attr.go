package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Service records the service name under the key "service".
func Service(name string) slog.Attr {
	return slog.String("service", name)
}

// Command records the command name under the key "command".
func Command(name string) slog.Attr {
	return slog.String("command", name)
}

// CommandID records the command identifier under the key "command_id".
// If id is nil, it returns an empty Attr.
func CommandID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("command_id", id)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Path records a property path under the key "path".
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Failures records a number of validation failures under the key "failures".
func Failures(n int) slog.Attr {
	return slog.Int("failures", n)
}

// Panic records a recovered panic value under the key "panic".
func Panic(v any) slog.Attr {
	return slog.Any("panic", v)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
