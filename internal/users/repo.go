package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userSeqKey      = "rl:seq:user"       // INCR counter for user IDs
	userKeyPrefix   = "rl:user:"          // User data: rl:user:{id}
	usernameIdxPref = "rl:user:byname:"   // Unique index: rl:user:byname:{username} -> id
	emailIdxPref    = "rl:user:byemail:"  // Unique index: rl:user:byemail:{email} -> id
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

// User is the account record. There is a single seeded demo user in normal
// operation, but the create command is part of the API surface.
type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"password"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateUser struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
}

// Store is the user persistence contract. Repo is the redis implementation;
// the postgres store in internal/storage/postgres satisfies it as well.
type Store interface {
	Create(ctx context.Context, u CreateUser) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

// Create assigns the next ID and writes the user. Username and email are
// reserved with SETNX index keys so duplicates fail with a typed error.
func (r *Repo) Create(ctx context.Context, u CreateUser) (*User, error) {
	if u.Username == "" {
		return nil, fmt.Errorf("username required")
	}
	if u.Email == "" {
		return nil, fmt.Errorf("email required")
	}

	id, err := r.client.Incr(ctx, userSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("next user id: %w", err)
	}

	nameKey := usernameIdxPref + strings.ToLower(u.Username)
	ok, err := r.client.SetNX(ctx, nameKey, id, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve username: %w", err)
	}
	if !ok {
		return nil, ErrUsernameTaken
	}

	mailKey := emailIdxPref + strings.ToLower(u.Email)
	ok, err = r.client.SetNX(ctx, mailKey, id, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve email: %w", err)
	}
	if !ok {
		// Roll back the username reservation so the name stays available.
		r.client.Del(ctx, nameKey)
		return nil, ErrEmailTaken
	}

	user := &User{
		ID:          int(id),
		Username:    u.Username,
		Password:    u.Password,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	if err := r.client.Set(ctx, r.userKey(user.ID), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	return user, nil
}

func (r *Repo) GetByID(ctx context.Context, id int) (*User, error) {
	data, err := r.client.Get(ctx, r.userKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var user User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &user, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*User, error) {
	idStr, err := r.client.Get(ctx, usernameIdxPref+strings.ToLower(username)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve username: %w", err)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt username index for %q: %w", username, err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) userKey(id int) string {
	return userKeyPrefix + strconv.Itoa(id)
}
