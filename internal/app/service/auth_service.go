package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"telco_dash/internal/common"
	"telco_dash/internal/common/security"
	"telco_dash/internal/domain"
	"telco_dash/internal/domain/model"
	"telco_dash/internal/domain/repository"
	"telco_dash/internal/platform/config"

	"github.com/google/uuid"
)

// AuthService is the server-mode Authenticator: bcrypt credentials, signed
// session tokens, records in the file-backed repository.
type AuthService struct {
	userRepo   repository.UserRepository
	adminEmail string
}

var _ domain.Authenticator = (*AuthService)(nil)

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		adminEmail: config.AppConfig.AdminEmail,
	}
}

// EnsureAdmin is the startup reconciliation step: if no record matches the
// configured admin email, one is created with role admin and the default
// password. Safe to re-run; it never duplicates the admin record.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	if _, err := s.userRepo.FindByEmail(ctx, s.adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	hash, err := security.HashPassword(config.AppConfig.AdminPassword)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	admin := &model.User{
		ID:           "u_admin",
		Email:        s.adminEmail,
		PasswordHash: hash,
		Name:         config.AppConfig.AdminName,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("ensure admin: %w", err)
	}
	log.Printf("Demo admin created: %s", s.adminEmail)
	return nil
}

func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("missing email or password: %w", common.ErrValidation)
	}
	email := model.NormalizeEmail(req.Email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := req.Name
	if name == "" {
		name = model.DefaultName(email)
	}
	role := model.RoleUser
	if email == s.adminEmail {
		role = model.RoleAdmin
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &domain.AuthResult{User: user.Profile(), Session: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("missing email or password: %w", common.ErrValidation)
	}

	// Unknown email and wrong password return the same error so callers
	// cannot tell which half was wrong.
	user, err := s.userRepo.FindByEmail(ctx, model.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &domain.AuthResult{User: user.Profile(), Session: token}, nil
}

// Logout is a no-op on the service side: tokens are not tracked, so
// invalidation is the transport clearing its credential. Idempotent.
func (s *AuthService) Logout(ctx context.Context, session string) error {
	return nil
}

func (s *AuthService) Me(ctx context.Context, session string) (*model.Profile, error) {
	userID, _, err := s.verify(session)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		// The subject may have been deleted after the token was issued;
		// tokens are not proactively revoked.
		return nil, err
	}
	return user.Profile(), nil
}

func (s *AuthService) ListUsers(ctx context.Context, session string) ([]*model.Profile, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	profiles := make([]*model.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, session string, id string) error {
	if err := s.requireAdmin(session); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *AuthService) verify(session string) (userID, role string, err error) {
	if session == "" {
		return "", "", common.ErrUnauthenticated
	}
	userID, role, err = security.VerifyToken(session)
	if err != nil {
		return "", "", common.ErrUnauthenticated
	}
	return userID, role, nil
}

func (s *AuthService) requireAdmin(session string) error {
	_, role, err := s.verify(session)
	if err != nil {
		return err
	}
	if role != model.RoleAdmin {
		return common.ErrForbidden
	}
	return nil
}
