package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/gophauth/internal/model"
)

type (
	userKey    struct{}
	sessionKey struct{}
)

// Manager stores the authenticated user in a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a copy of ctx carrying user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUserFromContext retrieves the user placed by SetUserToContext.
// The zero user is reported as absent.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey{}).(model.User)
	if !ok || user.ID == uuid.Nil {
		return model.User{}, false
	}
	return user, true
}

// SetSessionToContext returns a copy of ctx carrying the resolved session.
func (m *Manager) SetSessionToContext(ctx context.Context, session model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext retrieves the session placed by SetSessionToContext.
func (m *Manager) GetSessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(model.Session)
	if !ok || session.ID == "" {
		return model.Session{}, false
	}
	return session, true
}
