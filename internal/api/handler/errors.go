package handler

import (
	"errors"
	"net/http"

	"telco_dash/internal/common"
)

// respondAuthError translates the domain error taxonomy into the stable
// (status, message) pairs of the public API. Anything outside the
// taxonomy is an internal error and leaks no detail.
func respondAuthError(w http.ResponseWriter, err error) {
	message := "Internal server error"
	switch {
	case errors.Is(err, common.ErrValidation):
		message = "Missing email or password"
	case errors.Is(err, common.ErrDuplicateEmail):
		message = "Email already registered"
	case errors.Is(err, common.ErrInvalidCredentials):
		message = "Invalid email or password"
	case errors.Is(err, common.ErrUnauthenticated):
		message = "Not authenticated"
	case errors.Is(err, common.ErrForbidden):
		message = "Admin only"
	case errors.Is(err, common.ErrNotFound):
		message = "Not found"
	}
	common.RespondWithError(w, common.HTTPStatusFromError(err), message)
}
