// Package apperr defines the error taxonomy shared by services and handlers:
// validation failures, illegal transitions, lost compare-and-swap races, and
// membership-safe not-found errors, each mapped to one HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound covers unknown ids and callers without room membership.
	// Non-participants get the same answer as a missing row so the API never
	// leaks whether a resource exists.
	ErrNotFound = errors.New("not found")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is a missing or malformed field; the attempted operation
	// was not applied.
	ErrValidation = errors.New("validation failed")

	// ErrIllegalTransition is a guard violation: the actor or the current
	// status does not permit the requested transition.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrConflict means a concurrent transition won the compare-and-swap.
	// The caller must reload the current status before retrying.
	ErrConflict = errors.New("state changed, please reload")

	ErrEmailTaken = errors.New("email already registered")
)

// ErrMissingTarget fails verification completion when no target identity is
// resolvable from the explicit field, the stored target, or the notes pattern.
var ErrMissingTarget = fmt.Errorf("%w: no resolvable target identity", ErrValidation)

// Validationf wraps ErrValidation with a field-specific message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// HTTPStatus maps a service error to the status code returned at the API
// boundary.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrIllegalTransition):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrEmailTaken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
