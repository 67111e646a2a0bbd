package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
)

// ProjectStore is the durable projects.Store backed by the projects table.
type ProjectStore struct {
	db *sql.DB
}

func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) Create(ctx context.Context, p projects.CreateProject) (*projects.Project, error) {
	now := time.Now().UTC()
	out := projects.Project{
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO projects (name, description, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.Name, p.Description, p.UserID, now, now,
	).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	return &out, nil
}

func (s *ProjectStore) List(ctx context.Context, userID int) ([]projects.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, user_id, created_at, updated_at
		 FROM projects WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []projects.Project{}
	for rows.Next() {
		var p projects.Project
		var description sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &description, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Description = description.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *ProjectStore) Get(ctx context.Context, id int) (*projects.Project, error) {
	var p projects.Project
	var description sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, user_id, created_at, updated_at
		 FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &description, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, projects.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	p.Description = description.String
	return &p, nil
}

func (s *ProjectStore) Update(ctx context.Context, id int, upd projects.UpdateProject) (*projects.Project, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		current.Name = *upd.Name
	}
	if upd.Description != nil {
		current.Description = *upd.Description
	}
	current.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		`UPDATE projects SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		current.Name, current.Description, current.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	return current, nil
}

func (s *ProjectStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
