package middleware

import (
	"context"
	"net/http"

	"github.com/dtroode/gophauth/internal/api/http/response"
	"github.com/dtroode/gophauth/internal/logger"
	"github.com/dtroode/gophauth/internal/model"
)

// SessionResolver resolves a session token to the user it is bound to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (model.User, model.Session, error)
}

// Authenticate guards handlers that require a logged-in caller. It reads
// the session cookie, resolves it and injects the user and session into
// the context.
type Authenticate struct {
	sessions       SessionResolver
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionResolver, contextManager model.ContextManager, cookieName string, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		sessions:       sessions,
		contextManager: contextManager,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Handle wraps next so it only runs for authenticated requests.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			token = cookie.Value
		}

		user, session, err := m.sessions.Resolve(r.Context(), token)
		if err != nil {
			response.Error(w, m.logger, err)
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		ctx = m.contextManager.SetSessionToContext(ctx, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
