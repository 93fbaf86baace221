package localauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"telco_dash/internal/common"
	"telco_dash/internal/domain"
	"telco_dash/internal/domain/model"
	"telco_dash/internal/platform/config"
	"telco_dash/internal/platform/kvstore"

	"github.com/google/uuid"
)

const (
	usersKey   = "telco_users_v1"
	sessionKey = "telco_session_v1"
)

// sessionMarker is the stored session credential: no signature, just the
// subject id and issue time. Local mode has no network boundary to defend.
type sessionMarker struct {
	UserID string `json:"userId"`
	TS     int64  `json:"ts"`
}

// Service is the local-mode Authenticator. Users live as a JSON list in
// the durable storage scope; the session marker lives in whichever scope
// the login's remember choice selected. The session transport is the
// storage key itself, so the session argument on read operations is
// ignored and resolution always goes through storage.
//
// This mode trades the server's bcrypt hashing for a fast weak hash: a
// deliberately lower security tier, acceptable only without network
// exposure.
type Service struct {
	durable   kvstore.Storage
	ephemeral kvstore.Storage
}

var _ domain.Authenticator = (*Service)(nil)

func NewService(durable, ephemeral kvstore.Storage) *Service {
	return &Service{durable: durable, ephemeral: ephemeral}
}

func (s *Service) readUsers() []model.User {
	raw, ok := s.durable.Get(usersKey)
	if !ok {
		return nil
	}
	var users []model.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil
	}
	return users
}

func (s *Service) writeUsers(users []model.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("localauth: %w", err)
	}
	return s.durable.Set(usersKey, string(raw))
}

// EnsureAdmin seeds the demo admin account if it is absent. Idempotent.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	email := config.AppConfig.AdminEmail
	users := s.readUsers()
	for i := range users {
		if users[i].Email == email {
			return nil
		}
	}
	users = append(users, model.User{
		ID:           "u_demo",
		Email:        email,
		PasswordHash: WeakHash(config.AppConfig.AdminPassword),
		Name:         config.AppConfig.AdminName,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	return s.writeUsers(users)
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("missing email or password: %w", common.ErrValidation)
	}
	email := model.NormalizeEmail(req.Email)

	users := s.readUsers()
	for i := range users {
		if users[i].Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}

	name := req.Name
	if name == "" {
		name = model.DefaultName(email)
	}
	role := model.RoleUser
	if email == config.AppConfig.AdminEmail {
		role = model.RoleAdmin
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: WeakHash(req.Password),
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.writeUsers(append(users, user)); err != nil {
		return nil, err
	}

	marker, err := s.storeMarker(user.ID, false)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user.Profile(), Session: marker}, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("missing email or password: %w", common.ErrValidation)
	}
	email := model.NormalizeEmail(req.Email)

	var user *model.User
	users := s.readUsers()
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	// Same error for unknown email and wrong password.
	if user == nil || user.PasswordHash != WeakHash(req.Password) {
		return nil, common.ErrInvalidCredentials
	}

	marker, err := s.storeMarker(user.ID, req.Remember)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user.Profile(), Session: marker}, nil
}

// Logout clears the session marker from both scopes. Idempotent.
func (s *Service) Logout(ctx context.Context, session string) error {
	s.ephemeral.Remove(sessionKey)
	s.durable.Remove(sessionKey)
	return nil
}

func (s *Service) Me(ctx context.Context, session string) (*model.Profile, error) {
	user, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (s *Service) ListUsers(ctx context.Context, session string) ([]*model.Profile, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	users := s.readUsers()
	profiles := make([]*model.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

func (s *Service) DeleteUser(ctx context.Context, session string, id string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	users := s.readUsers()
	for i := range users {
		if users[i].ID == id {
			return s.writeUsers(append(users[:i], users[i+1:]...))
		}
	}
	return common.ErrNotFound
}

// storeMarker writes the session marker into the scope selected by the
// remember choice. Without remember the session does not survive a
// process restart. The returned credential is the marker in a
// cookie-safe encoding; resolution still goes through storage.
func (s *Service) storeMarker(userID string, remember bool) (string, error) {
	raw, err := json.Marshal(sessionMarker{UserID: userID, TS: time.Now().UnixMilli()})
	if err != nil {
		return "", fmt.Errorf("localauth: %w", err)
	}
	scope := s.ephemeral
	if remember {
		scope = s.durable
	}
	if err := scope.Set(sessionKey, string(raw)); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// currentUser resolves the marker, ephemeral scope first, then durable.
func (s *Service) currentUser() (*model.User, error) {
	raw, ok := s.ephemeral.Get(sessionKey)
	if !ok {
		raw, ok = s.durable.Get(sessionKey)
	}
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	var marker sessionMarker
	if err := json.Unmarshal([]byte(raw), &marker); err != nil {
		return nil, common.ErrUnauthenticated
	}
	users := s.readUsers()
	for i := range users {
		if users[i].ID == marker.UserID {
			return &users[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *Service) requireAdmin() error {
	user, err := s.currentUser()
	if err != nil {
		return err
	}
	if user.Role != model.RoleAdmin {
		return common.ErrForbidden
	}
	return nil
}
