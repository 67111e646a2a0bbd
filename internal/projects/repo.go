package projects

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
	projectSeqKey    = "rl:seq:project"     // INCR counter for project IDs
	projectKeyPrefix = "rl:project:"        // Project data: rl:project:{id}
	userIdxPrefix    = "rl:project:byuser:" // Set of project IDs per user: rl:project:byuser:{user_id}
)

var ErrNotFound = errors.New("project not found")

type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateProject struct {
	Name        string
	Description string
	UserID      int
}

// UpdateProject carries the mutable fields; nil means "leave unchanged".
type UpdateProject struct {
	Name        *string
	Description *string
}

// Store is the project persistence contract. The redis Repo is the default;
// internal/storage/postgres provides a durable implementation.
type Store interface {
	Create(ctx context.Context, p CreateProject) (*Project, error)
	List(ctx context.Context, userID int) ([]Project, error)
	Get(ctx context.Context, id int) (*Project, error)
	Update(ctx context.Context, id int, upd UpdateProject) (*Project, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Create(ctx context.Context, p CreateProject) (*Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("name required")
	}

	id, err := r.client.Incr(ctx, projectSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("next project id: %w", err)
	}

	now := time.Now().UTC()
	project := &Project{
		ID:          int(id),
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	data, err := json.Marshal(project)
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.projectKey(project.ID), data, 0)
	pipe.SAdd(ctx, r.userIdxKey(project.UserID), project.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}

	return project, nil
}

func (r *Repo) List(ctx context.Context, userID int) ([]Project, error) {
	ids, err := r.client.SMembers(ctx, r.userIdxKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list project ids: %w", err)
	}

	out := make([]Project, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		p, err := r.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Index member without a value; skip rather than fail the listing.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*Project, error) {
	data, err := r.client.Get(ctx, r.projectKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	var p Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	return &p, nil
}

func (r *Repo) Update(ctx context.Context, id int, upd UpdateProject) (*Project, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	p.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	if err := r.client.Set(ctx, r.projectKey(id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}
	return p, nil
}

// Delete removes the project only. Documents, design references and
// validations keep their owner reference; there is no cascade.
func (r *Repo) Delete(ctx context.Context, id int) (bool, error) {
	p, err := r.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.projectKey(id))
	pipe.SRem(ctx, r.userIdxKey(p.UserID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return true, nil
}

func (r *Repo) projectKey(id int) string {
	return projectKeyPrefix + strconv.Itoa(id)
}

func (r *Repo) userIdxKey(userID int) string {
	return userIdxPrefix + strconv.Itoa(userID)
}
