package common

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden access")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
// DuplicateEmail and InvalidCredentials deliberately map to 400, matching
// the public API contract rather than the 409/401 a stricter REST surface
// would use.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
