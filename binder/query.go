package binder

import "net/http"

// BindQuery creates a query parameter binder function.
//
// It supports struct tags for custom parameter names:
//   - `query:"name"` - binds to query parameter "name"
//   - `query:"-"` - skips the field
//
// Fields without a query tag are bound by their lowercased name. Slices
// accept both repeated parameters and comma-separated values.
//
//	type ListCountries struct {
//		Page    int `query:"page"`
//		PerPage int `query:"per_page"`
//	}
func BindQuery() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
