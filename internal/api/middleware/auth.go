package middleware

import (
	"context"
	"errors"
	"net/http"

	"telco_dash/internal/common"
	"telco_dash/internal/common/security"
	"telco_dash/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const userRoleCtxKey contextKey = "userRole"

// SessionCookie is the transport cookie carrying the session credential.
const SessionCookie = "token"

// TokenFromCookie extracts the session token from the transport cookie.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Verifier looks for the session token in the cookie first, then in the
// Authorization bearer header, and verifies it into the request context.
func Verifier(next http.Handler) http.Handler {
	return jwtauth.Verify(security.TokenAuth, TokenFromCookie, jwtauth.TokenFromHeader)(next)
}

// Authenticator rejects requests whose context holds no valid token. Both
// identity claims must be present and well-formed; only the role is kept
// on the context, for AdminOnly.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if _, err := security.GetUserIDFromClaims(claims); err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		userRole, err := security.GetUserRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userRoleCtxKey, userRole)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly rejects authenticated requests whose role is not admin. It
// must run after Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(userRoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}
