package existence

import (
	"errors"
	"fmt"
)

// Category normalizes why a check could not reach a verdict.
type Category string

const (
	// CategoryTimeout covers deadlines and cancellation of the caller's context.
	CategoryTimeout Category = "timeout"
	// CategoryOutage covers connection failures and 5xx responses.
	CategoryOutage Category = "outage"
	// CategoryBadStatus covers responses outside 2xx/4xx/5xx.
	CategoryBadStatus Category = "bad_status"
	// CategoryInternal covers failures before a request was sent, e.g. a bad base address.
	CategoryInternal Category = "internal"
)

// CheckError describes an Unreachable outcome.
type CheckError struct {
	Category   Category
	URL        string
	StatusCode int
	Underlying error
}

func (e *CheckError) Error() string {
	switch {
	case e.Underlying != nil:
		return fmt.Sprintf("existence check %s [%s]: %v", e.URL, e.Category, e.Underlying)
	case e.StatusCode != 0:
		return fmt.Sprintf("existence check %s [%s]: status %d", e.URL, e.Category, e.StatusCode)
	default:
		return fmt.Sprintf("existence check %s [%s]", e.URL, e.Category)
	}
}

func (e *CheckError) Unwrap() error {
	return e.Underlying
}

// CategoryOf extracts the category from err, or "" when err is not a CheckError.
func CategoryOf(err error) Category {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ""
}
