// Package memory provides process-local stores used when no database is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/gophauth/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps users in maps guarded by a single lock, so the
// uniqueness check and the insert are one atomic step.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]model.User
	byUsername map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[uuid.UUID]model.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return model.User{}, model.ErrUsernameTaken
	}
	if _, taken := r.byID[user.ID]; taken {
		return model.User{}, fmt.Errorf("%w: %s", model.ErrDuplicateID, user.ID)
	}

	r.byID[user.ID] = user
	r.byUsername[user.Username] = user.ID
	return user, nil
}
