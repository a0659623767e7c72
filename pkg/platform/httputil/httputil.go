package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "recom/pkg/domain-errors"
)

// errorMapping is the wire form of one domain error category.
type errorMapping struct {
	status int
	code   string
}

var errorMappings = map[dErrors.Code]errorMapping{
	dErrors.CodeNotFound:    {http.StatusNotFound, "not_found"},
	dErrors.CodeBadRequest:  {http.StatusBadRequest, "bad_request"},
	dErrors.CodeValidation:  {http.StatusBadRequest, "validation_error"},
	dErrors.CodeUnavailable: {http.StatusServiceUnavailable, "upstream_unavailable"},
	dErrors.CodeTimeout:     {http.StatusGatewayTimeout, "upstream_timeout"},
	dErrors.CodeInternal:    {http.StatusInternalServerError, "internal_error"},
}

func mappingFor(code dErrors.Code) errorMapping {
	if m, ok := errorMappings[code]; ok {
		return m
	}
	return errorMappings[dErrors.CodeInternal]
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError is the single translation point from domain errors to HTTP.
// Internal and uncategorized errors are reported without their message.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		de = &dErrors.Error{Code: dErrors.CodeInternal}
	}
	m := mappingFor(de.Code)

	resp := ErrorResponse{Error: m.code}
	if de.Code != dErrors.CodeInternal {
		resp.Description = de.Message
	}
	WriteJSON(w, m.status, resp)
}

// PathID reads a positive int64 from the named chi URL parameter.
func PathID(r *http.Request, param string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || v <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid "+param)
	}
	return v, nil
}
