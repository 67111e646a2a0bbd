package figma

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
	designSeqKey     = "rl:seq:figma"          // INCR counter for design IDs
	designKeyPrefix  = "rl:figma:"             // Design data: rl:figma:{id}
	projectIdxPrefix = "rl:figma:byproject:"   // Set of design IDs per project
)

var ErrNotFound = errors.New("figma design not found")

// Design references an external Figma file. FileKey is nil when the URL
// matched neither accepted shape.
type Design struct {
	ID           int       `json:"id"`
	ProjectID    int       `json:"projectId"`
	Name         string    `json:"name"`
	FigmaFileURL string    `json:"figmaFileUrl"`
	FigmaFileKey *string   `json:"figmaFileKey"`
	AccessToken  *string   `json:"accessToken,omitempty"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	LastAccessed time.Time `json:"lastAccessed"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateDesign struct {
	ProjectID    int
	Name         string
	FigmaFileURL string
}

// UpdateDesign carries the mutable fields; nil leaves a field unchanged.
// Changing the URL re-resolves the file key.
type UpdateDesign struct {
	Name         *string
	FigmaFileURL *string
	AccessToken  *string
	ThumbnailURL *string
}

type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Create(ctx context.Context, d CreateDesign) (*Design, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if d.FigmaFileURL == "" {
		return nil, fmt.Errorf("figma file url required")
	}

	id, err := r.client.Incr(ctx, designSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("next design id: %w", err)
	}

	now := time.Now().UTC()
	design := &Design{
		ID:           int(id),
		ProjectID:    d.ProjectID,
		Name:         d.Name,
		FigmaFileURL: d.FigmaFileURL,
		LastAccessed: now,
		CreatedAt:    now,
	}
	if key, ok := ExtractFileKey(d.FigmaFileURL); ok {
		design.FigmaFileKey = &key
	}

	data, err := json.Marshal(design)
	if err != nil {
		return nil, fmt.Errorf("marshal design: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.designKey(design.ID), data, 0)
	pipe.SAdd(ctx, r.projectIdxKey(design.ProjectID), design.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store design: %w", err)
	}

	return design, nil
}

func (r *Repo) ListByProject(ctx context.Context, projectID int) ([]Design, error) {
	ids, err := r.client.SMembers(ctx, r.projectIdxKey(projectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list design ids: %w", err)
	}

	out := make([]Design, 0, len(ids))
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

func (r *Repo) Get(ctx context.Context, id int) (*Design, error) {
	data, err := r.client.Get(ctx, r.designKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get design: %w", err)
	}

	var d Design
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("unmarshal design: %w", err)
	}
	return &d, nil
}

// Update merges the provided fields and bumps LastAccessed, which moves on
// every mutation.
func (r *Repo) Update(ctx context.Context, id int, upd UpdateDesign) (*Design, error) {
	d, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.FigmaFileURL != nil {
		d.FigmaFileURL = *upd.FigmaFileURL
		d.FigmaFileKey = nil
		if key, ok := ExtractFileKey(*upd.FigmaFileURL); ok {
			d.FigmaFileKey = &key
		}
	}
	if upd.AccessToken != nil {
		d.AccessToken = upd.AccessToken
	}
	if upd.ThumbnailURL != nil {
		d.ThumbnailURL = upd.ThumbnailURL
	}
	d.LastAccessed = time.Now().UTC()

	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal design: %w", err)
	}
	if err := r.client.Set(ctx, r.designKey(id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("store design: %w", err)
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
	pipe.Del(ctx, r.designKey(id))
	pipe.SRem(ctx, r.projectIdxKey(d.ProjectID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete design: %w", err)
	}
	return true, nil
}

func (r *Repo) designKey(id int) string {
	return designKeyPrefix + strconv.Itoa(id)
}

func (r *Repo) projectIdxKey(projectID int) string {
	return projectIdxPrefix + strconv.Itoa(projectID)
}
