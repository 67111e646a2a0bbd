package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/auth"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/users"
)

var demoProjects = []struct {
	name, description string
}{
	{"E-commerce Dashboard", "Requirements validation for the storefront admin dashboard"},
	{"Mobile Banking App", "Requirements validation for the retail banking mobile client"},
	{"HR Management System", "Requirements validation for the internal HR portal"},
}

// SeedDemo creates the demo account and its sample projects. Re-running is a
// no-op: an existing demo user means the data is already in place.
func SeedDemo(ctx context.Context, st Stores) error {
	if _, err := st.Users.GetByUsername(ctx, auth.DemoUsername); err == nil {
		return nil
	} else if !errors.Is(err, users.ErrNotFound) {
		return fmt.Errorf("seed: look up demo user: %w", err)
	}

	u, err := st.Users.Create(ctx, users.CreateUser{
		Username:    auth.DemoUsername,
		Password:    "password123",
		Email:       "john@example.com",
		DisplayName: "John Doe",
	})
	if err != nil {
		return fmt.Errorf("seed: create demo user: %w", err)
	}

	for _, p := range demoProjects {
		if _, err := st.Projects.Create(ctx, projects.CreateProject{
			Name:        p.name,
			Description: p.description,
			UserID:      u.ID,
		}); err != nil {
			return fmt.Errorf("seed: create project %q: %w", p.name, err)
		}
	}

	log.Printf("[seed] demo user %q created with %d sample projects", auth.DemoUsername, len(demoProjects))
	return nil
}

type seedFile struct {
	Users []struct {
		Username    string `yaml:"username"`
		Password    string `yaml:"password"`
		Email       string `yaml:"email"`
		DisplayName string `yaml:"displayName"`
		Projects    []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
		} `yaml:"projects"`
	} `yaml:"users"`
}

// SeedFromFile loads extra fixture users and projects from a YAML file.
// Users that already exist are skipped along with their projects.
func SeedFromFile(ctx context.Context, st Stores, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", path, err)
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("seed: parse %s: %w", path, err)
	}

	for _, su := range f.Users {
		u, err := st.Users.Create(ctx, users.CreateUser{
			Username:    su.Username,
			Password:    su.Password,
			Email:       su.Email,
			DisplayName: su.DisplayName,
		})
		if errors.Is(err, users.ErrUsernameTaken) || errors.Is(err, users.ErrEmailTaken) {
			log.Printf("[seed] user %q already present, skipping", su.Username)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed: create user %q: %w", su.Username, err)
		}

		for _, sp := range su.Projects {
			if _, err := st.Projects.Create(ctx, projects.CreateProject{
				Name:        sp.Name,
				Description: sp.Description,
				UserID:      u.ID,
			}); err != nil {
				return fmt.Errorf("seed: create project %q: %w", sp.Name, err)
			}
		}
	}

	return nil
}
