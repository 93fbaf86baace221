package handler

import (
	"net/http"

	"telco_dash/internal/common"
	"telco_dash/internal/domain"
	"telco_dash/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// UserHandler serves the admin-only user management routes.
type UserHandler struct {
	auth domain.Authenticator
}

func NewUserHandler(auth domain.Authenticator) *UserHandler {
	return &UserHandler{auth: auth}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

type usersResponse struct {
	Users []*model.Profile `json:"users"`
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.auth.ListUsers(r.Context(), sessionFromRequest(r))
	if err != nil {
		respondAuthError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, usersResponse{Users: profiles})
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.auth.DeleteUser(r.Context(), sessionFromRequest(r), id); err != nil {
		respondAuthError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
