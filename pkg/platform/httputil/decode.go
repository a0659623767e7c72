package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "recom/pkg/domain-errors"
	"recom/pkg/requestcontext"
)

// Request bodies may implement either hook; Normalize runs before Validate.
type (
	Normalizable interface{ Normalize() }
	Validatable  interface{ Validate() error }
)

// DecodeAndPrepare reads a JSON body into a T, normalizes and validates it.
// On failure it writes the error response itself and returns false:
// unreadable bodies are bad_request, rejected ones validation_error.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	ctx := r.Context()
	req := new(T)

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.WarnContext(ctx, "unreadable request body",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		WriteError(w, decodeError(err))
		return nil, false
	}

	if n, ok := any(req).(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := any(req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logger.WarnContext(ctx, "request rejected",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			if _, categorized := dErrors.CodeOf(err); !categorized {
				err = dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
			}
			WriteError(w, err)
			return nil, false
		}
	}
	return req, true
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return dErrors.New(dErrors.CodeBadRequest, "request body too large")
	}
	return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
}
