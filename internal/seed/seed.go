// Package seed bootstraps accounts from a YAML file at startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dtroode/gophauth/internal/logger"
	"github.com/dtroode/gophauth/internal/model"
	"github.com/dtroode/gophauth/internal/validate"
)

type usersFile struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"users"`
}

// Seeder creates the accounts listed in a seed file.
type Seeder struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	logger    *logger.Logger
}

func NewSeeder(userStore model.UserStore, hasher model.PasswordHasher, logger *logger.Logger) *Seeder {
	return &Seeder{userStore: userStore, hasher: hasher, logger: logger}
}

// SeedFromFile reads path and seeds the accounts it lists.
func (s *Seeder) SeedFromFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return s.Seed(ctx, f)
}

// Seed creates every listed account that does not exist yet and returns
// how many were created. Entries failing validation abort the run.
func (s *Seeder) Seed(ctx context.Context, r io.Reader) (int, error) {
	var uf usersFile
	if err := yaml.NewDecoder(r).Decode(&uf); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to decode seed file: %w", err)
	}

	created := 0
	for i, entry := range uf.Users {
		username := strings.TrimSpace(entry.Username)
		if err := validate.Username(username); err != nil {
			return created, fmt.Errorf("seed entry %d: %w", i, err)
		}
		if err := validate.Password(entry.Password); err != nil {
			return created, fmt.Errorf("seed entry %d (%s): %w", i, username, err)
		}

		_, err := s.userStore.GetByUsername(ctx, username)
		if err == nil {
			s.logger.Debug("Seed: user already exists, skipping", "username", username)
			continue
		}
		if !errors.Is(err, model.ErrNotFound) {
			return created, fmt.Errorf("failed to get user by username: %w", err)
		}

		hash, err := s.hasher.Hash(entry.Password)
		if err != nil {
			return created, fmt.Errorf("failed to hash password: %w", err)
		}

		_, err = s.userStore.Create(ctx, model.User{
			ID:           uuid.New(),
			Username:     username,
			PasswordHash: hash,
			Role:         model.RoleUser,
			CreatedAt:    time.Now().UTC(),
		})
		if errors.Is(err, model.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to create user: %w", err)
		}

		s.logger.Info("Seed: user created", "username", username)
		created++
	}

	return created, nil
}
