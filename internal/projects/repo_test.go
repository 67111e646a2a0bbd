package projects

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *Repo {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRepo(client)
}

func TestRepo_CreateAndList(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("ids are assigned in creation order", func(t *testing.T) {
		for i, name := range []string{"First", "Second", "Third"} {
			p, err := repo.Create(ctx, CreateProject{Name: name, UserID: 1})
			require.NoError(t, err)
			assert.Equal(t, i+1, p.ID)
			assert.False(t, p.CreatedAt.IsZero())
			assert.Equal(t, p.CreatedAt, p.UpdatedAt)
		}
	})

	t.Run("list is scoped to the owner and sorted by id", func(t *testing.T) {
		_, err := repo.Create(ctx, CreateProject{Name: "Other Owner", UserID: 2})
		require.NoError(t, err)

		mine, err := repo.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, mine, 3)
		assert.Equal(t, []string{"First", "Second", "Third"}, []string{mine[0].Name, mine[1].Name, mine[2].Name})

		theirs, err := repo.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, theirs, 1)
		assert.Equal(t, "Other Owner", theirs[0].Name)
	})

	t.Run("list for unknown user is empty", func(t *testing.T) {
		got, err := repo.List(ctx, 99)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRepo_Update(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateProject{Name: "Before", Description: "old", UserID: 1})
	require.NoError(t, err)

	t.Run("merges only the provided fields", func(t *testing.T) {
		name := "After"
		updated, err := repo.Update(ctx, created.ID, UpdateProject{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Name)
		assert.Equal(t, "old", updated.Description)
		assert.True(t, !updated.UpdatedAt.Before(created.UpdatedAt))
	})

	t.Run("missing project", func(t *testing.T) {
		name := "x"
		_, err := repo.Update(ctx, 404, UpdateProject{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepo_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateProject{Name: "Doomed", UserID: 1})
	require.NoError(t, err)

	t.Run("removes the project and its index entry", func(t *testing.T) {
		ok, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		remaining, err := repo.List(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("second delete reports false", func(t *testing.T) {
		ok, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
