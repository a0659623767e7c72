package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "recom/pkg/domain-errors"
)

type productBody struct {
	Name     string `json:"productName"`
	Category string `json:"category"`
}

func (r *productBody) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *productBody) Validate() error {
	if r.Name == "" {
		return errors.New("productName is required")
	}
	return nil
}

type idBody struct {
	ID int64 `json:"id"`
}

func (r *idBody) Validate() error {
	if r.ID <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "id must be positive")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readErrorBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("decodes then normalizes", func(t *testing.T) {
		w := httptest.NewRecorder()
		got, ok := DecodeAndPrepare[productBody](w, post(`{"productName":"  Lamp ","category":"home"}`), discardLogger())

		require.True(t, ok)
		assert.Equal(t, "Lamp", got.Name)
		assert.Equal(t, "home", got.Category)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		w := httptest.NewRecorder()
		got, ok := DecodeAndPrepare[productBody](w, post(`{"productName":`), discardLogger())

		assert.False(t, ok)
		assert.Nil(t, got)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorResponse{Error: "bad_request", Description: "invalid request body"}, readErrorBody(t, w))
	})

	t.Run("oversized body is reported as such", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := post(`{"productName":"` + strings.Repeat("x", 64) + `"}`)
		req.Body = http.MaxBytesReader(w, req.Body, 16)

		_, ok := DecodeAndPrepare[productBody](w, req, discardLogger())

		assert.False(t, ok)
		assert.Equal(t, "request body too large", readErrorBody(t, w).Description)
	})

	t.Run("uncategorized validation errors become validation_error", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[productBody](w, post(`{"productName":"   "}`), discardLogger())

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorResponse{Error: "validation_error", Description: "productName is required"}, readErrorBody(t, w))
	})

	t.Run("domain errors keep their code", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[idBody](w, post(`{"id":0}`), discardLogger())

		assert.False(t, ok)
		assert.Equal(t, "bad_request", readErrorBody(t, w).Error)
	})
}
