// Package apperr holds the error kinds shared by the use cases and mapped to
// HTTP status codes by the handlers.
package apperr

import "errors"

var (
	// ErrNotFound covers both a missing id and an id owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied is returned when an operation references a parent
	// entity (e.g. an application) that the caller does not own.
	ErrAccessDenied = errors.New("access denied")
)

// Validation is a malformed or missing input; the message is safe to show to
// the caller.
type Validation string

func (e Validation) Error() string { return string(e) }

// IsValidation reports whether err is (or wraps) a Validation error.
func IsValidation(err error) bool {
	var v Validation
	return errors.As(err, &v)
}
