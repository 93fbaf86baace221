package localauth

import (
	"context"
	"testing"

	"telco_dash/internal/common"
	"telco_dash/internal/domain"
	"telco_dash/internal/domain/model"
	"telco_dash/internal/platform/config"
	"telco_dash/internal/platform/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *kvstore.DirStorage) {
	t.Helper()
	config.AppConfig = &config.Config{
		AdminEmail:    "admin@telco.dev",
		AdminPassword: "Admin123",
		AdminName:     "Admin Demo",
	}
	durable, err := kvstore.NewDirStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(durable, kvstore.NewMemStorage()), durable
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{Email: "Alice@Example.com", Password: "Passw0rd1", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.NotEmpty(t, reg.Session)

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "ALICE@EXAMPLE.COM", Password: "Passw0rd1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{Email: "A@B.com", Password: "pw"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestLogin_GenericError(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	_, errWrongPass := svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "nope"})
	_, errNoUser := svc.Login(ctx, domain.LoginRequest{Email: "ghost@example.com", Password: "nope"})

	assert.ErrorIs(t, errWrongPass, common.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, common.ErrInvalidCredentials)
}

func TestMeAndLogout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Me(ctx, "")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	reg, err := svc.Register(ctx, domain.RegisterRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	profile, err := svc.Me(ctx, reg.Session)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, profile.ID)

	require.NoError(t, svc.Logout(ctx, reg.Session))
	_, err = svc.Me(ctx, reg.Session)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	// Logout with no session is not an error.
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestRememberMe_SurvivesRestart(t *testing.T) {
	svc, durable := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "pw", Remember: true})
	require.NoError(t, err)

	// A restart keeps the durable scope but resets the ephemeral one.
	restarted := NewService(durable, kvstore.NewMemStorage())
	profile, err := restarted.Me(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
}

func TestNoRemember_DoesNotSurviveRestart(t *testing.T) {
	svc, durable := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	restarted := NewService(durable, kvstore.NewMemStorage())
	_, err = restarted.Me(ctx, "")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx))
	require.NoError(t, svc.EnsureAdmin(ctx))

	admin, err := svc.Login(ctx, domain.LoginRequest{Email: "admin@telco.dev", Password: "Admin123"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.User.Role)

	users, err := svc.ListUsers(ctx, admin.Session)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAdminOps(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx))
	alice, err := svc.Register(ctx, domain.RegisterRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	// Alice holds the current session and is not an admin.
	_, err = svc.ListUsers(ctx, alice.Session)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteUser(ctx, alice.Session, "u_demo"), common.ErrForbidden)

	admin, err := svc.Login(ctx, domain.LoginRequest{Email: "admin@telco.dev", Password: "Admin123"})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx, admin.Session)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, svc.DeleteUser(ctx, admin.Session, alice.User.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.Session, alice.User.ID), common.ErrNotFound)
}

func TestMe_DeletedUserReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx))
	alice, err := svc.Register(ctx, domain.RegisterRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	admin, err := svc.Login(ctx, domain.LoginRequest{Email: "admin@telco.dev", Password: "Admin123"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUser(ctx, admin.Session, alice.User.ID))

	// Put Alice's marker back to simulate a stale session.
	require.NoError(t, svc.Logout(ctx, ""))
	_, err = svc.storeMarker(alice.User.ID, false)
	require.NoError(t, err)

	_, err = svc.Me(ctx, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
