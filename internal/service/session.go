package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/gophauth/internal/api/errors"
	"github.com/dtroode/gophauth/internal/logger"
	"github.com/dtroode/gophauth/internal/model"
)

// SessionService issues session tokens, resolves them back to users and
// gates operations that require an authenticated caller.
type SessionService struct {
	codec       model.SessionCodec
	userStore   model.UserStore
	revoker     model.SessionRevoker
	ctxManager  model.ContextManager
	ttl         time.Duration
	rememberTTL time.Duration
	logger      *logger.Logger
	now         func() time.Time
}

func NewSessionService(
	codec model.SessionCodec,
	userStore model.UserStore,
	revoker model.SessionRevoker,
	ctxManager model.ContextManager,
	ttl time.Duration,
	rememberTTL time.Duration,
	logger *logger.Logger,
) *SessionService {
	return &SessionService{
		codec:       codec,
		userStore:   userStore,
		revoker:     revoker,
		ctxManager:  ctxManager,
		ttl:         ttl,
		rememberTTL: rememberTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Issue binds user to a new session.
func (s *SessionService) Issue(ctx context.Context, user model.User, remember bool) (model.SessionToken, error) {
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}

	now := s.now()
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		Remember:  remember,
	}

	value, err := s.codec.Encode(session)
	if err != nil {
		return model.SessionToken{}, fmt.Errorf("failed to encode session: %w", err)
	}

	s.logger.Debug("Session service: session issued",
		"user_id", user.ID,
		"session_id", session.ID,
		"remember", remember)

	return model.SessionToken{
		Value:     value,
		ExpiresAt: session.ExpiresAt,
		Remember:  remember,
	}, nil
}

// Resolve returns the user bound to token, reading it fresh from the store,
// together with the decoded session. A token that fails verification, was
// revoked or names a user that no longer exists yields an
// authentication-required error.
func (s *SessionService) Resolve(ctx context.Context, token string) (model.User, model.Session, error) {
	if token == "" {
		return model.User{}, model.Session{}, apiErrors.NewErrAuthRequired()
	}

	session, err := s.codec.Decode(token)
	if err != nil {
		s.logger.Debug("Session service: rejected session token",
			"error", err.Error())
		return model.User{}, model.Session{}, apiErrors.NewErrAuthRequired()
	}

	revoked, err := s.revoker.IsRevoked(ctx, session.ID)
	if err != nil {
		return model.User{}, model.Session{}, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		s.logger.Debug("Session service: revoked session presented",
			"user_id", session.UserID,
			"session_id", session.ID)
		return model.User{}, model.Session{}, apiErrors.NewErrAuthRequired()
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Session service: session references missing user",
			"user_id", session.UserID,
			"session_id", session.ID)
		return model.User{}, model.Session{}, apiErrors.NewErrAuthRequired()
	}
	if err != nil {
		return model.User{}, model.Session{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, session, nil
}

// Require returns the identity resolved for this request, if any.
func (s *SessionService) Require(ctx context.Context) (model.User, error) {
	user, ok := s.ctxManager.GetUserFromContext(ctx)
	if !ok || user.ID == uuid.Nil {
		return model.User{}, apiErrors.NewErrAuthRequired()
	}
	return user, nil
}

// Terminate ends the caller's session. The session id is revoked until
// the token would have expired, and the returned token tells the transport
// to drop whatever session state the client holds.
func (s *SessionService) Terminate(ctx context.Context) (model.SessionToken, error) {
	user, err := s.Require(ctx)
	if err != nil {
		return model.SessionToken{}, err
	}

	if session, ok := s.ctxManager.GetSessionFromContext(ctx); ok {
		if err := s.revoker.Revoke(ctx, session.ID, session.ExpiresAt); err != nil {
			return model.SessionToken{}, fmt.Errorf("failed to revoke session: %w", err)
		}
	}

	s.logger.Debug("Session service: session terminated",
		"user_id", user.ID)

	return model.SessionToken{
		ExpiresAt: time.Unix(0, 0).UTC(),
		Cleared:   true,
	}, nil
}
