package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/gophauth/internal/api/errors"
	"github.com/dtroode/gophauth/internal/logger"
	"github.com/dtroode/gophauth/internal/metrics"
	"github.com/dtroode/gophauth/internal/model"
	"github.com/dtroode/gophauth/internal/validate"
)

// fallbackDummyHash is a valid bcrypt hash (cost 10) of a random string,
// used only if hashing the dummy password fails.
const fallbackDummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3ZbVPjTSbfHSqsp1N3OFIzS"

type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	sessions  *SessionService
	logger    *logger.Logger
	now       func() time.Time

	// Unknown usernames are verified against dummyHash so both login
	// failure paths cost one comparison at the configured work factor.
	dummyOnce sync.Once
	dummyHash string
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	sessions *SessionService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates an account with the default role.
func (a *Auth) Register(ctx context.Context, creds model.Credentials) (model.PublicUser, error) {
	username := strings.TrimSpace(creds.Username)

	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if err := validate.Username(username); err != nil {
		metrics.RecordAuthOperation(metrics.OperationRegister, metrics.OutcomeInvalidInput)
		return model.PublicUser{}, apiErrors.NewErrValidation(err.Error())
	}
	if err := validate.Password(creds.Password); err != nil {
		metrics.RecordAuthOperation(metrics.OperationRegister, metrics.OutcomeInvalidInput)
		return model.PublicUser{}, apiErrors.NewErrValidation(err.Error())
	}

	_, err := a.userStore.GetByUsername(ctx, username)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"username", username)
		metrics.RecordAuthOperation(metrics.OperationRegister, metrics.OutcomeConflict)
		return model.PublicUser{}, apiErrors.NewErrUsernameTaken(username)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		metrics.RecordAuthOperation(metrics.OperationRegister, metrics.OutcomeError)
		return model.PublicUser{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	hash, err := a.hasher.Hash(creds.Password)
	if err != nil {
		metrics.RecordAuthOperation(metrics.OperationRegister, metrics.OutcomeError)
		return model.PublicUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    a.now().UTC(),
	}

	saved, err := a.userStore.Create(ctx, user)
	if errors.Is(err, model.ErrUsernameTaken) {
		a.logger.Info("Auth service: username taken by concurrent registration",
			"username", username)
		metrics.RecordAuthOperation(metrics.OperationRegister, metrics.OutcomeConflict)
		return model.PublicUser{}, apiErrors.NewErrUsernameTaken(username)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		metrics.RecordAuthOperation(metrics.OperationRegister, metrics.OutcomeError)
		return model.PublicUser{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"username", username,
		"user_id", saved.ID)
	metrics.RecordAuthOperation(metrics.OperationRegister, metrics.OutcomeSuccess)

	return saved.Public(), nil
}

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, creds model.Credentials, remember bool) (model.PublicUser, model.SessionToken, error) {
	username := strings.TrimSpace(creds.Username)

	a.logger.Debug("Auth service: starting user login",
		"username", username)

	if username == "" || creds.Password == "" {
		metrics.RecordAuthOperation(metrics.OperationLogin, metrics.OutcomeInvalidInput)
		return model.PublicUser{}, model.SessionToken{}, apiErrors.NewErrMissingCredentials()
	}

	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		metrics.RecordAuthOperation(metrics.OperationLogin, metrics.OutcomeError)
		return model.PublicUser{}, model.SessionToken{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if errors.Is(err, model.ErrNotFound) {
		a.hasher.Verify(creds.Password, a.dummyPasswordHash())
		a.logger.Info("Auth service: login failed",
			"username", username)
		metrics.RecordAuthOperation(metrics.OperationLogin, metrics.OutcomeInvalidCredentials)
		return model.PublicUser{}, model.SessionToken{}, apiErrors.NewErrInvalidCredentials()
	}

	if !a.hasher.Verify(creds.Password, user.PasswordHash) {
		a.logger.Info("Auth service: login failed",
			"username", username)
		metrics.RecordAuthOperation(metrics.OperationLogin, metrics.OutcomeInvalidCredentials)
		return model.PublicUser{}, model.SessionToken{}, apiErrors.NewErrInvalidCredentials()
	}

	token, err := a.sessions.Issue(ctx, user, remember)
	if err != nil {
		metrics.RecordAuthOperation(metrics.OperationLogin, metrics.OutcomeError)
		return model.PublicUser{}, model.SessionToken{}, fmt.Errorf("failed to issue session: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"username", username,
		"user_id", user.ID)
	metrics.RecordAuthOperation(metrics.OperationLogin, metrics.OutcomeSuccess)

	return user.Public(), token, nil
}

// Logout ends the caller's session.
func (a *Auth) Logout(ctx context.Context) (model.SessionToken, error) {
	token, err := a.sessions.Terminate(ctx)
	if err != nil {
		metrics.RecordAuthOperation(metrics.OperationLogout, outcomeOf(err))
		return model.SessionToken{}, err
	}

	metrics.RecordAuthOperation(metrics.OperationLogout, metrics.OutcomeSuccess)
	return token, nil
}

// Profile returns the caller's account as currently stored.
func (a *Auth) Profile(ctx context.Context) (model.PublicUser, error) {
	caller, err := a.sessions.Require(ctx)
	if err != nil {
		metrics.RecordAuthOperation(metrics.OperationProfile, outcomeOf(err))
		return model.PublicUser{}, err
	}

	user, err := a.userStore.GetByID(ctx, caller.ID)
	if errors.Is(err, model.ErrNotFound) {
		metrics.RecordAuthOperation(metrics.OperationProfile, metrics.OutcomeUnauthenticated)
		return model.PublicUser{}, apiErrors.NewErrAuthRequired()
	}
	if err != nil {
		metrics.RecordAuthOperation(metrics.OperationProfile, metrics.OutcomeError)
		return model.PublicUser{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	metrics.RecordAuthOperation(metrics.OperationProfile, metrics.OutcomeSuccess)
	return user.Public(), nil
}

// Warm derives the dummy password hash ahead of the first login.
func (a *Auth) Warm() {
	a.dummyPasswordHash()
}

func (a *Auth) dummyPasswordHash() string {
	a.dummyOnce.Do(func() {
		hash, err := a.hasher.Hash(uuid.NewString())
		if err != nil {
			a.logger.Error("Auth service: failed to derive dummy password hash",
				"error", err.Error())
			hash = fallbackDummyHash
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}

func outcomeOf(err error) string {
	var apiErr *apiErrors.APIError
	if errors.As(err, &apiErr) && apiErr.Kind == apiErrors.KindAuthorization {
		return metrics.OutcomeUnauthenticated
	}
	return metrics.OutcomeError
}
