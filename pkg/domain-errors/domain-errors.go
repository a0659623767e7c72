// Package domainerrors carries failure categories across the store, service and
// transport layers without tying them to HTTP.
package domainerrors

import "errors"

type Code string

const (
	// CodeNotFound: the addressed record does not exist.
	CodeNotFound Code = "not_found"

	// CodeBadRequest: the request could not be read (malformed body, bad path id).
	CodeBadRequest Code = "bad_request"

	// CodeValidation: the request was readable but rejected, including
	// interactions whose user or product could not be confirmed.
	CodeValidation Code = "validation_failed"

	// CodeUnavailable: a service this one depends on could not be reached.
	CodeUnavailable Code = "unavailable"

	// CodeTimeout: a dependency did not answer in time.
	CodeTimeout Code = "timeout"

	// CodeInternal: anything else. Its message is never shown to clients.
	CodeInternal Code = "internal_error"
)

// Error is a categorized failure. Message is safe to show to clients unless
// Code is CodeInternal.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a domain error of the same category, so that
// errors.Is(err, &Error{Code: CodeNotFound}) works regardless of message.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches msg to err. When err already carries a category, that category
// wins over code; the cause stays reachable through errors.Is and errors.As.
func Wrap(err error, code Code, msg string) error {
	if inner, ok := CodeOf(err); ok {
		code = inner
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the category of the outermost domain error in err's chain.
func CodeOf(err error) (Code, bool) {
	var de *Error
	if !errors.As(err, &de) {
		return "", false
	}
	return de.Code, true
}

func HasCode(err error, code Code) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}
