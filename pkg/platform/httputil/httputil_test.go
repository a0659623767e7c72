package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "recom/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		status      int
		code        string
		description string
	}{
		{"not found", dErrors.New(dErrors.CodeNotFound, "product not found"), http.StatusNotFound, "not_found", "product not found"},
		{"validation", dErrors.New(dErrors.CodeValidation, "validation failed: user not found"), http.StatusBadRequest, "validation_error", "validation failed: user not found"},
		{"unavailable", dErrors.New(dErrors.CodeUnavailable, "product service unavailable"), http.StatusServiceUnavailable, "upstream_unavailable", "product service unavailable"},
		{"internal hides message", dErrors.New(dErrors.CodeInternal, "pq: relation does not exist"), http.StatusInternalServerError, "internal_error", ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			resp := readErrorBody(t, w)
			assert.Equal(t, tt.code, resp.Error)
			assert.Equal(t, tt.description, resp.Description)
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		path    string
		want    int64
		wantErr bool
	}{
		{"/products/7", 7, false},
		{"/products/0", 0, true},
		{"/products/-3", 0, true},
		{"/products/abc", 0, true},
		{"/products/99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var got int64
			var gotErr error
			r := chi.NewRouter()
			r.Get("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
				got, gotErr = PathID(req, "id")
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if tt.wantErr {
				require.Error(t, gotErr)
				assert.True(t, dErrors.HasCode(gotErr, dErrors.CodeBadRequest))
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
