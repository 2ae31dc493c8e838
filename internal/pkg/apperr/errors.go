// Package apperr defines the error categories shared by every service layer.
//
// Services wrap one of the sentinels with context (fmt.Errorf("post %s: %w", id, ErrNotFound))
// and the REST layer maps the category to an HTTP status code.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness or state-transition conflict.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput reports a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized reports missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden reports an authenticated caller lacking permission.
	ErrForbidden = errors.New("forbidden")
)

// NotFound wraps ErrNotFound with a formatted subject.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Conflict wraps ErrConflict with a formatted subject.
func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// Invalid wraps ErrInvalidInput with a formatted subject.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// Unauthorized wraps ErrUnauthorized with a formatted subject.
func Unauthorized(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnauthorized)
}

// Forbidden wraps ErrForbidden with a formatted subject.
func Forbidden(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrForbidden)
}

// Is reports whether err belongs to one of the known categories.
func Is(err error) bool {
	for _, sentinel := range []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
