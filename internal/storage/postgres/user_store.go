package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/users"
)

// UserStore is the durable users.Store backed by the users table.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u users.CreateUser) (*users.User, error) {
	out := users.User{
		Username:    u.Username,
		Password:    u.Password,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, email, display_name, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		u.Username, u.Password, u.Email, u.DisplayName, out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		var pqErr *pq.Error
		// 23505 is unique_violation; the constraint name tells us which
		// index rejected the row.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return nil, users.ErrEmailTaken
			}
			return nil, users.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &out, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int) (*users.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, email, display_name, created_at
		 FROM users WHERE id = $1`, id))
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, email, display_name, created_at
		 FROM users WHERE username = $1`, username))
}

func (s *UserStore) scanOne(row *sql.Row) (*users.User, error) {
	var u users.User
	var displayName sql.NullString

	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &displayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.DisplayName = displayName.String
	return &u, nil
}
