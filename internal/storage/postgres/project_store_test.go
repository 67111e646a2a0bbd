package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
)

func setupProjectStore(t *testing.T) (*ProjectStore, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewProjectStore(db), mock, db
}

func TestProjectStore_Create(t *testing.T) {
	store, mock, db := setupProjectStore(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("Dashboard", "demo", 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	p, err := store.Create(context.Background(), projects.CreateProject{
		Name: "Dashboard", Description: "demo", UserID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, p.ID)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStore_List(t *testing.T) {
	store, mock, db := setupProjectStore(t)
	defer db.Close()

	cols := []string{"id", "name", "description", "user_id", "created_at", "updated_at"}
	now := time.Now()

	t.Run("returns owner's projects", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, description, user_id, created_at, updated_at`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, "First", "a", 1, now, now).
				AddRow(2, "Second", nil, 1, now, now))

		items, err := store.List(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "First", items[0].Name)
		assert.Empty(t, items[1].Description)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, description, user_id, created_at, updated_at`).
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows(cols))

		items, err := store.List(context.Background(), 9)
		require.NoError(t, err)
		assert.Empty(t, items)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectStore_Update(t *testing.T) {
	store, mock, db := setupProjectStore(t)
	defer db.Close()

	cols := []string{"id", "name", "description", "user_id", "created_at", "updated_at"}
	now := time.Now()

	t.Run("merges provided fields", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, description, user_id, created_at, updated_at`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Old", "keep", 1, now, now))
		mock.ExpectExec(`UPDATE projects SET`).
			WithArgs("New", "keep", sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		name := "New"
		p, err := store.Update(context.Background(), 1, projects.UpdateProject{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "New", p.Name)
		assert.Equal(t, "keep", p.Description)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing project", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, description, user_id, created_at, updated_at`).
			WithArgs(404).
			WillReturnRows(sqlmock.NewRows(cols))

		name := "x"
		_, err := store.Update(context.Background(), 404, projects.UpdateProject{Name: &name})
		assert.ErrorIs(t, err, projects.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectStore_Delete(t *testing.T) {
	store, mock, db := setupProjectStore(t)
	defer db.Close()

	t.Run("reports deletion", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM projects`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := store.Delete(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("reports missing row", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM projects`).
			WithArgs(404).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := store.Delete(context.Background(), 404)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
