package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/refdata/binder"
)

type createAgency struct {
	Name string   `json:"name"`
	Code string   `json:"code"`
	Tags []string `json:"tags"`
}

func jsonRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/agencies", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestBindJSON(t *testing.T) {
	bind := binder.BindJSON()

	t.Run("valid body", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{"name":"Acme","code":"AC","tags":["a","b"]}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, createAgency{Name: "Acme", Code: "AC", Tags: []string{"a", "b"}}, got)
	})

	t.Run("content type with charset", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{"name":"Acme"}`, "application/json; charset=utf-8"), &got)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
	})

	t.Run("strings are kept verbatim", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{"name":"<script>alert(1)</script>"}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "<script>alert(1)</script>", got.Name)
	})

	t.Run("missing content type", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{}`, ""), &got)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{}`, "text/plain"), &got)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("unknown field", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{"name":"Acme","extra":1}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("malformed body", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{"name":`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("type mismatch", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{"name":42}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(``, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		var got createAgency
		err := bind(jsonRequest(`{"name":"a"}{"name":"b"}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("body above limit", func(t *testing.T) {
		var got createAgency
		err := binder.BindJSONWithLimit(16)(jsonRequest(`{"name":"a very long agency name"}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})
}
