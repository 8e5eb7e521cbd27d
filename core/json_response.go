package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/refdata/pkg/validator"
)

// JSONResponse is the standard JSON response structure
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
// Details groups messages by field or property path; Failures keeps the
// original order of a validation rejection.
type ErrorDetail struct {
	Code     string              `json:"code,omitempty"`
	Message  string              `json:"message,omitempty"`
	Details  map[string][]string `json:"details,omitempty"`
	Failures []FieldFailure      `json:"failures,omitempty"`
}

// FieldFailure is a single rendered validation failure.
type FieldFailure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
}

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONMeta adds metadata to response
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON creates a JSON response. Passing an error renders it like JSONError.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK}

	switch val := v.(type) {
	case JSONResponse:
		r.body = val
	case error:
		r.body.Error = errorToDetail(val, &r.status)
	default:
		r.body.Data = v
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// JSONError creates a JSON error response.
//
// Status mapping:
//   - validator.ValidationErrors and ValidationError: 422 with grouped details
//   - HTTPError (possibly wrapped): its own status code and key
//   - anything else: 500 without exposing the error text
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}
	if err != nil {
		r.body.Error = errorToDetail(err, &r.status)
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// StatusOf returns the HTTP status JSONError would use for err.
func StatusOf(err error) int {
	status := http.StatusInternalServerError
	errorToDetail(err, &status)
	return status
}

func errorToDetail(err error, status *int) *ErrorDetail {
	if errs := validator.ExtractValidationErrors(err); len(errs) > 0 {
		*status = http.StatusUnprocessableEntity
		detail := validationDetail(NewValidationErrorFrom(errs))
		detail.Failures = make([]FieldFailure, 0, len(errs))
		for _, e := range errs {
			detail.Failures = append(detail.Failures, FieldFailure{
				Field:   e.Field,
				Message: e.Message,
				Source:  string(e.Source),
			})
		}
		return detail
	}

	var valErr ValidationError
	if errors.As(err, &valErr) {
		*status = http.StatusUnprocessableEntity
		return validationDetail(valErr)
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		*status = httpErr.Code
		message := http.StatusText(httpErr.Code)
		// Wrapped client errors carry a cause worth showing.
		if err != error(httpErr) && httpErr.Code < http.StatusInternalServerError {
			message = err.Error()
		}
		return &ErrorDetail{Code: httpErr.Key, Message: message}
	}

	*status = http.StatusInternalServerError
	return &ErrorDetail{
		Code:    "internal_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

func validationDetail(ve ValidationError) *ErrorDetail {
	detail := &ErrorDetail{
		Code:    "validation_error",
		Message: "validation failed",
	}
	if len(ve) > 0 {
		detail.Details = make(map[string][]string, len(ve))
		for field, messages := range ve {
			detail.Details[field] = append([]string(nil), messages...)
		}
	}
	return detail
}
