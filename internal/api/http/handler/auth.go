package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	apiErrors "github.com/dtroode/gophauth/internal/api/errors"
	"github.com/dtroode/gophauth/internal/api/http/response"
	"github.com/dtroode/gophauth/internal/logger"
	"github.com/dtroode/gophauth/internal/model"
)

// AuthService defines account and session operations.
type AuthService interface {
	Register(ctx context.Context, creds model.Credentials) (model.PublicUser, error)
	Login(ctx context.Context, creds model.Credentials, remember bool) (model.PublicUser, model.SessionToken, error)
	Logout(ctx context.Context) (model.SessionToken, error)
	Profile(ctx context.Context) (model.PublicUser, error)
}

// CookieConfig controls how session tokens are written to clients.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService  AuthService
	cookie       CookieConfig
	maxBodyBytes int64
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, cookie CookieConfig, maxBodyBytes int64, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		cookie:       cookie,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember *bool  `json:"remember"`
}

type userResponse struct {
	Message string           `json:"message,omitempty"`
	User    model.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an account. Any role sent by the client is ignored.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"username", req.Username)

	user, err := h.authService.Register(r.Context(), model.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"username", req.Username,
			"error", err.Error())
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, userResponse{
		Message: "user registered successfully",
		User:    user,
	})
}

// Login verifies credentials and sets the session cookie.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	remember := true
	if req.Remember != nil {
		remember = *req.Remember
	}

	h.logger.Debug("Auth handler: processing login request",
		"username", req.Username)

	user, token, err := h.authService.Login(r.Context(), model.Credentials{
		Username: req.Username,
		Password: req.Password,
	}, remember)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		response.Error(w, h.logger, err)
		return
	}

	h.setSessionCookie(w, token)
	response.JSON(w, http.StatusOK, userResponse{
		Message: "login successful",
		User:    user,
	})
}

// Logout ends the session and expires the cookie.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := h.authService.Logout(r.Context())
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	h.setSessionCookie(w, token)
	response.JSON(w, http.StatusOK, messageResponse{Message: "logout successful"})
}

// Profile returns the caller's account.
func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Profile(r.Context())
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Auth) decode(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		response.Error(w, h.logger, apiErrors.NewErrNoData())
		return credentialsRequest{}, false
	}

	return req, true
}

func (h *Auth) setSessionCookie(w http.ResponseWriter, token model.SessionToken) {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token.Value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	switch {
	case token.Cleared:
		cookie.Value = ""
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	case token.Remember:
		cookie.Expires = token.ExpiresAt
		cookie.MaxAge = int(time.Until(token.ExpiresAt).Seconds())
	}

	http.SetCookie(w, cookie)
}
