package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"telco_dash/internal/common"
	"telco_dash/internal/domain/model"
	"telco_dash/internal/platform/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) UserRepository {
	t.Helper()
	return NewFileUserRepository(filestore.New(filepath.Join(t.TempDir(), "data.json")))
}

func testUser(id, email string) *model.User {
	return &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: "x",
		Name:         "Test",
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestCreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "alice@example.com")))

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	byID, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "alice@example.com")))
	err := repo.Create(ctx, testUser("u2", "alice@example.com"))
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestFind_Missing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "alice@example.com")))
	require.NoError(t, repo.Delete(ctx, "u1"))

	_, err := repo.FindByID(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "u1"), common.ErrNotFound)
}

func TestList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@example.com")))
	require.NoError(t, repo.Create(ctx, testUser("u2", "b@example.com")))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
