package users

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repo, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRepo(client), mr
}

func TestRepo_Create(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	t.Run("creates user with sequential ids", func(t *testing.T) {
		first, err := repo.Create(ctx, CreateUser{
			Username: "alice", Password: "secret", Email: "alice@example.com", DisplayName: "Alice",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, first.ID)
		assert.Equal(t, "alice", first.Username)
		assert.False(t, first.CreatedAt.IsZero())

		second, err := repo.Create(ctx, CreateUser{
			Username: "bob", Password: "secret", Email: "bob@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, second.ID)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := repo.Create(ctx, CreateUser{
			Username: "alice", Password: "other", Email: "alice2@example.com",
		})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, CreateUser{
			Username: "carol", Password: "other", Email: "alice@example.com",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("email rejection releases the username", func(t *testing.T) {
		_, err := repo.Create(ctx, CreateUser{
			Username: "carol", Password: "other", Email: "carol@example.com",
		})
		require.NoError(t, err)
	})
}

func TestRepo_Get(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUser{
		Username: "johndoe", Password: "password123", Email: "john@example.com", DisplayName: "John Doe",
	})
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		u, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "johndoe", u.Username)
		assert.Equal(t, "John Doe", u.DisplayName)
	})

	t.Run("by username", func(t *testing.T) {
		u, err := repo.GetByUsername(ctx, "johndoe")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
