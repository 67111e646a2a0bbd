package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	documentSeqKey    = "rl:seq:document"       // INCR counter for document IDs
	documentKeyPrefix = "rl:document:"          // Document data: rl:document:{id}
	projectIdxPrefix  = "rl:document:byproject:" // Set of document IDs per project
)

var ErrNotFound = errors.New("document not found")

// Document is the metadata record for an uploaded requirements file. Content
// and extracted requirements stay null until the external parser attaches
// them.
type Document struct {
	ID                    int             `json:"id"`
	ProjectID             int             `json:"projectId"`
	Name                  string          `json:"name"`
	OriginalFilename      string          `json:"originalFilename"`
	FileSize              int64           `json:"fileSize"`
	FileType              string          `json:"fileType"`
	Content               *string         `json:"content"`
	ExtractedRequirements json.RawMessage `json:"extractedRequirements"`
	CreatedAt             time.Time       `json:"createdAt"`
}

type CreateDocument struct {
	ProjectID        int
	Name             string
	OriginalFilename string
	FileSize         int64
	FileType         string
}

type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Create(ctx context.Context, d CreateDocument) (*Document, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if d.FileSize <= 0 {
		return nil, fmt.Errorf("file size must be positive")
	}

	id, err := r.client.Incr(ctx, documentSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("next document id: %w", err)
	}

	doc := &Document{
		ID:               int(id),
		ProjectID:        d.ProjectID,
		Name:             d.Name,
		OriginalFilename: d.OriginalFilename,
		FileSize:         d.FileSize,
		FileType:         d.FileType,
		CreatedAt:        time.Now().UTC(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.documentKey(doc.ID), data, 0)
	pipe.SAdd(ctx, r.projectIdxKey(doc.ProjectID), doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	return doc, nil
}

func (r *Repo) ListByProject(ctx context.Context, projectID int) ([]Document, error) {
	ids, err := r.client.SMembers(ctx, r.projectIdxKey(projectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list document ids: %w", err)
	}

	out := make([]Document, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		d, err := r.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*Document, error) {
	data, err := r.client.Get(ctx, r.documentKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	var d Document
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &d, nil
}

// AttachContent stores the parsed text and extracted-requirements payload
// delivered by the external document parser. It is the single mutation a
// document sees after creation.
func (r *Repo) AttachContent(ctx context.Context, id int, content string, extracted json.RawMessage) (*Document, error) {
	d, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Content = &content
	d.ExtractedRequirements = extracted

	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if err := r.client.Set(ctx, r.documentKey(id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	return d, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (bool, error) {
	d, err := r.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.documentKey(id))
	pipe.SRem(ctx, r.projectIdxKey(d.ProjectID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return true, nil
}

func (r *Repo) documentKey(id int) string {
	return documentKeyPrefix + strconv.Itoa(id)
}

func (r *Repo) projectIdxKey(projectID int) string {
	return projectIdxPrefix + strconv.Itoa(projectID)
}
