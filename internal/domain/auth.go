package domain

import (
	"context"

	"telco_dash/internal/domain/model"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Remember only matters in local mode, where it selects the durable
	// session scope over the ephemeral one. Server mode ignores it.
	Remember bool `json:"remember"`
}

// AuthResult pairs the public profile with the session credential
// established for it. The credential is opaque to callers: a signed token
// in server mode, a storage marker in local mode.
type AuthResult struct {
	User    *model.Profile
	Session string
}

// Authenticator is the mode-independent auth contract. Both the
// server-mode service and the local-mode service implement it, so calling
// code never branches on mode. Errors are drawn from the internal/common
// taxonomy in every implementation.
type Authenticator interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Logout(ctx context.Context, session string) error
	Me(ctx context.Context, session string) (*model.Profile, error)
	ListUsers(ctx context.Context, session string) ([]*model.Profile, error)
	DeleteUser(ctx context.Context, session string, id string) error
}
