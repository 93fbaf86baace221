package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"telco_dash/internal/api/middleware"
	"telco_dash/internal/common"
	"telco_dash/internal/domain"
	"telco_dash/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler struct {
	auth domain.Authenticator
}

func NewAuthHandler(auth domain.Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes mounts the auth routes. sessionGuard is the middleware
// chain protecting routes that need an established session; the router
// leaves it empty for modes whose services resolve sessions themselves.
func (h *AuthHandler) RegisterRoutes(r chi.Router, sessionGuard ...func(http.Handler) http.Handler) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Group(func(protected chi.Router) {
		protected.Use(sessionGuard...)
		protected.Get("/me", h.me)
	})
}

type userResponse struct {
	User *model.Profile `json:"user"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.auth.Register(r.Context(), req)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	setSessionCookie(w, result.Session)
	common.RespondWithJSON(w, http.StatusCreated, userResponse{User: result.User})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.auth.Login(r.Context(), req)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	setSessionCookie(w, result.Session)
	common.RespondWithJSON(w, http.StatusOK, userResponse{User: result.User})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	// Idempotent: a missing session is not an error.
	_ = h.auth.Logout(r.Context(), sessionFromRequest(r))
	clearSessionCookie(w)
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.auth.Me(r.Context(), sessionFromRequest(r))
	if err != nil {
		// The subject can vanish between token issuance and lookup.
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondAuthError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, userResponse{User: profile})
}

// sessionFromRequest pulls the raw session credential off the transport:
// the session cookie first, then the bearer header.
func sessionFromRequest(r *http.Request) string {
	if token := middleware.TokenFromCookie(r); token != "" {
		return token
	}
	return jwtauth.TokenFromHeader(r)
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
