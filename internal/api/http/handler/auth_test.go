package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apiErrors "github.com/dtroode/gophauth/internal/api/errors"
	"github.com/dtroode/gophauth/internal/mocks"
	"github.com/dtroode/gophauth/internal/model"
	"github.com/dtroode/gophauth/internal/testutil"
)

var testCookie = CookieConfig{Name: "session", Secure: true}

func publicUser() model.PublicUser {
	return model.PublicUser{ID: uuid.New(), Username: "bob1", Role: model.RoleUser, CreatedAt: "2025-01-02T03:04:05Z"}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie.Name {
			return c
		}
	}
	t.Fatalf("no %q cookie set", testCookie.Name)
	return nil
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	user := publicUser()
	svc.On("Register", mock.Anything, model.Credentials{Username: "bob1", Password: "secreto123"}).Return(user, nil).Once()

	h := NewAuth(svc, testCookie, 4096, testutil.MakeNoopLogger())
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"bob1","password":"secreto123","role":"admin"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"user"`)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuth_Register_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantBody string
	}{
		{
			name:     "empty body",
			body:     "",
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"no data provided"}`,
		},
		{
			name:     "malformed json",
			body:     `{"username":`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"no data provided"}`,
		},
		{
			name:     "oversized body",
			body:     `{"username":"` + strings.Repeat("a", 5000) + `"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"no data provided"}`,
		},
		{
			name:     "validation",
			body:     `{"username":"ab","password":"secreto123"}`,
			svcErr:   apiErrors.NewErrValidation("username must be at least 3 characters"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"username must be at least 3 characters"}`,
		},
		{
			name:     "conflict",
			body:     `{"username":"alice","password":"secreto123"}`,
			svcErr:   apiErrors.NewErrUsernameTaken("alice"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"username already exists"}`,
		},
		{
			name:     "internal",
			body:     `{"username":"alice","password":"secreto123"}`,
			svcErr:   assert.AnError,
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal server error","message":"an unexpected error occurred"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewAuthService(t)
			if tt.svcErr != nil {
				svc.On("Register", mock.Anything, mock.Anything).Return(model.PublicUser{}, tt.svcErr).Once()
			}

			h := NewAuth(svc, testCookie, 4096, testutil.MakeNoopLogger())
			rec := httptest.NewRecorder()
			h.Register(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		wantRemember bool
		token        model.SessionToken
		wantExpires  bool
	}{
		{
			name:         "remember by default",
			body:         `{"username":"bob1","password":"secreto123"}`,
			wantRemember: true,
			token:        model.SessionToken{Value: "signed", Remember: true, ExpiresAt: time.Now().Add(720 * time.Hour)},
			wantExpires:  true,
		},
		{
			name:         "session only",
			body:         `{"username":"bob1","password":"secreto123","remember":false}`,
			wantRemember: false,
			token:        model.SessionToken{Value: "signed", ExpiresAt: time.Now().Add(24 * time.Hour)},
			wantExpires:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewAuthService(t)
			svc.On("Login", mock.Anything, model.Credentials{Username: "bob1", Password: "secreto123"}, tt.wantRemember).
				Return(publicUser(), tt.token, nil).Once()

			h := NewAuth(svc, testCookie, 4096, testutil.MakeNoopLogger())
			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"message":"login successful"`)

			c := sessionCookie(t, rec)
			assert.Equal(t, "signed", c.Value)
			assert.True(t, c.HttpOnly)
			assert.True(t, c.Secure)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.Equal(t, "/", c.Path)
			if tt.wantExpires {
				assert.Greater(t, c.MaxAge, 0)
			} else {
				assert.Zero(t, c.MaxAge)
				assert.True(t, c.Expires.IsZero())
			}
		})
	}
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	svc.On("Login", mock.Anything, mock.Anything, true).Return(model.PublicUser{}, model.SessionToken{}, apiErrors.NewErrInvalidCredentials()).Once()

	h := NewAuth(svc, testCookie, 4096, testutil.MakeNoopLogger())
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ghost","password":"whatever1"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	svc.On("Logout", mock.Anything).Return(model.SessionToken{Cleared: true}, nil).Once()

	h := NewAuth(svc, testCookie, 4096, testutil.MakeNoopLogger())
	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"logout successful"}`, rec.Body.String())

	c := sessionCookie(t, rec)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestAuth_Profile(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewAuthService(t)
		user := publicUser()
		svc.On("Profile", mock.Anything).Return(user, nil).Once()

		h := NewAuth(svc, testCookie, 4096, testutil.MakeNoopLogger())
		rec := httptest.NewRecorder()
		h.Profile(rec, httptest.NewRequest(http.MethodGet, "/perfil", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"bob1"`)
		assert.NotContains(t, rec.Body.String(), "message")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewAuthService(t)
		svc.On("Profile", mock.Anything).Return(model.PublicUser{}, apiErrors.NewErrAuthRequired()).Once()

		h := NewAuth(svc, testCookie, 4096, testutil.MakeNoopLogger())
		rec := httptest.NewRecorder()
		h.Profile(rec, httptest.NewRequest(http.MethodGet, "/perfil", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication required","message":"you must log in to access this resource"}`, rec.Body.String())
	})
}
