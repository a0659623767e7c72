package service

import (
	"errors"
	"fmt"

	"recom/internal/interaction/existence"
	"recom/internal/interaction/metrics"
	dErrors "recom/pkg/domain-errors"
)

// Rejection causes. Every rejection returned by CreateInteraction wraps exactly
// one of these, so callers can branch with errors.Is.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrUserUnavailable    = errors.New("user service unavailable")
	ErrProductUnavailable = errors.New("product service unavailable")
)

const (
	targetUser    = "user"
	targetProduct = "product"
)

type checkResult struct {
	outcome existence.Outcome
	err     error
}

// rejection maps one check result onto a validation_failed domain error, or nil when found.
func rejection(target string, res checkResult) error {
	if res.outcome == existence.Found {
		return nil
	}

	notFound, unavailable := ErrUserNotFound, ErrUserUnavailable
	if target == targetProduct {
		notFound, unavailable = ErrProductNotFound, ErrProductUnavailable
	}

	if res.outcome == existence.NotFound {
		return dErrors.Wrap(notFound, dErrors.CodeValidation, "validation failed: "+notFound.Error())
	}

	cause := unavailable
	if res.err != nil {
		cause = fmt.Errorf("%w: %w", unavailable, res.err)
	}
	return dErrors.Wrap(cause, dErrors.CodeValidation, "validation failed: "+unavailable.Error())
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return metrics.ReasonUserNotFound
	case errors.Is(err, ErrProductNotFound):
		return metrics.ReasonProductNotFound
	case errors.Is(err, ErrUserUnavailable):
		return metrics.ReasonUserUnavailable
	case errors.Is(err, ErrProductUnavailable):
		return metrics.ReasonProductUnavailable
	default:
		return metrics.ReasonInvalid
	}
}
