package documents

import (
	"context"
	"encoding/json"
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

func TestRepo_Create(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("creates metadata with null content", func(t *testing.T) {
		doc, err := repo.Create(ctx, CreateDocument{
			ProjectID:        1,
			Name:             "SRS v1",
			OriginalFilename: "srs.pdf",
			FileSize:         2048,
			FileType:         "application/pdf",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, doc.ID)
		assert.Nil(t, doc.Content)
		assert.Nil(t, doc.ExtractedRequirements)
		assert.False(t, doc.CreatedAt.IsZero())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := repo.Create(ctx, CreateDocument{ProjectID: 1, FileSize: 10})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		_, err := repo.Create(ctx, CreateDocument{ProjectID: 1, Name: "empty.pdf", FileSize: 0})
		assert.Error(t, err)
	})
}

func TestRepo_AttachContent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	doc, err := repo.Create(ctx, CreateDocument{
		ProjectID: 1, Name: "SRS", OriginalFilename: "srs.docx", FileSize: 512, FileType: "docx",
	})
	require.NoError(t, err)

	t.Run("stores parsed text and requirements", func(t *testing.T) {
		extracted := json.RawMessage(`[{"id":"REQ-001","text":"The system shall validate email addresses"}]`)
		updated, err := repo.AttachContent(ctx, doc.ID, "full parsed text", extracted)
		require.NoError(t, err)
		require.NotNil(t, updated.Content)
		assert.Equal(t, "full parsed text", *updated.Content)
		assert.JSONEq(t, string(extracted), string(updated.ExtractedRequirements))

		// Persisted, not just returned.
		got, err := repo.Get(ctx, doc.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Content)
		assert.Equal(t, "full parsed text", *got.Content)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := repo.AttachContent(ctx, 404, "text", nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepo_ListByProject(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.pdf"} {
		_, err := repo.Create(ctx, CreateDocument{ProjectID: 7, Name: name, FileSize: 1, FileType: "pdf"})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, CreateDocument{ProjectID: 8, Name: "c.pdf", FileSize: 1, FileType: "pdf"})
	require.NoError(t, err)

	docs, err := repo.ListByProject(ctx, 7)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.pdf", docs[0].Name)
	assert.Equal(t, "b.pdf", docs[1].Name)
}

func TestRepo_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	doc, err := repo.Create(ctx, CreateDocument{ProjectID: 1, Name: "gone.pdf", FileSize: 9, FileType: "pdf"})
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
