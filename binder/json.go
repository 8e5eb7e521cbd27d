package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// BindJSON creates a strict JSON binder function.
// Unknown fields, trailing data and bodies above DefaultMaxJSONSize are rejected.
// String values are bound verbatim: forbidden content is reported later by
// the validation stage, not silently rewritten here.
//
// Example:
//
//	r.Post("/countries", core.Wrap(createCountry,
//		core.WithBinder[refdata.CreateCountry](binder.BindJSON()),
//	))
func BindJSON() func(r *http.Request, v any) error {
	return BindJSONWithLimit(DefaultMaxJSONSize)
}

// BindJSONWithLimit works like BindJSON with a custom body size limit in bytes.
func BindJSONWithLimit(limit int64) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrInvalidJSON, err)
		}
		if int64(len(body)) > limit {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, limit)
		}
		if len(body) == 0 {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		// Ensure entire body was consumed
		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}

		return nil
	}
}
