package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-rest-service/internal/domain/user"
	apperrors "user-rest-service/pkg/errors"
)

func setupTestRepo(t *testing.T) *UserRepoPG {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&UserSchema{}))

	return NewUserRepoPG(db, zaptest.NewLogger(t))
}

func seedUser(t *testing.T, repo *UserRepoPG, name, email string) *user.User {
	created, err := repo.Create(context.Background(), &user.User{
		Name:     name,
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	return created
}

func TestUserRepoPG_Create(t *testing.T) {
	repo := setupTestRepo(t)

	created := seedUser(t, repo, "John Doe", "john@example.com")
	assert.Positive(t, created.ID)
	assert.Equal(t, "John Doe", created.Name)
	assert.Equal(t, "john@example.com", created.Email)
}

func TestUserRepoPG_Create_DuplicateEmail(t *testing.T) {
	repo := setupTestRepo(t)
	seedUser(t, repo, "John Doe", "john@example.com")

	_, err := repo.Create(context.Background(), &user.User{
		Name:     "Other John",
		Email:    "john@example.com",
		Password: "secret2",
	})
	require.Error(t, err)

	var conflict *apperrors.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserRepoPG_GetByID(t *testing.T) {
	repo := setupTestRepo(t)
	created := seedUser(t, repo, "John Doe", "john@example.com")

	t.Run("found", func(t *testing.T) {
		got, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, got.Email)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := repo.GetByID(context.Background(), 99999)
		var notFound *apperrors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestUserRepoPG_GetByEmail(t *testing.T) {
	repo := setupTestRepo(t)
	created := seedUser(t, repo, "John Doe", "john@example.com")

	t.Run("found", func(t *testing.T) {
		got, err := repo.GetByEmail(context.Background(), "john@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("absent returns nil without error", func(t *testing.T) {
		got, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUserRepoPG_ListPageAndCount(t *testing.T) {
	repo := setupTestRepo(t)
	for i := 0; i < 25; i++ {
		seedUser(t, repo, fmt.Sprintf("User %02d", i), fmt.Sprintf("user%02d@example.com", i))
	}

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	page, err := repo.ListPage(context.Background(), 10, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, "user10@example.com", page[0].Email)

	lastPage, err := repo.ListPage(context.Background(), 20, 10)
	require.NoError(t, err)
	assert.Len(t, lastPage, 5)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 25)
}

func TestUserRepoPG_Update(t *testing.T) {
	repo := setupTestRepo(t)
	created := seedUser(t, repo, "John Doe", "john@example.com")

	t.Run("partial update", func(t *testing.T) {
		affected, err := repo.Update(context.Background(), created.ID, map[string]any{"name": "Johnny"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		got, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Johnny", got.Name)
		assert.Equal(t, "john@example.com", got.Email)
	})

	t.Run("absent row affects nothing", func(t *testing.T) {
		affected, err := repo.Update(context.Background(), 99999, map[string]any{"name": "Ghost"})
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		other := seedUser(t, repo, "Jane", "jane@example.com")
		_, err := repo.Update(context.Background(), other.ID, map[string]any{"email": "john@example.com"})
		var conflict *apperrors.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}

func TestUserRepoPG_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	created := seedUser(t, repo, "John Doe", "john@example.com")

	affected, err := repo.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
