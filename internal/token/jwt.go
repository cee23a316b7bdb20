package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/gophauth/internal/model"
)

const typeSession = "session"

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// Claims represents JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	Remember  bool      `json:"remember,omitempty"`
	TokenType string    `json:"typ"`
}

var _ model.SessionCodec = (*JWT)(nil)

// JWT implements SessionCodec backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
}

// NewJWT creates a new session codec signing with secretKey.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: []byte(secretKey)}
}

// Encode signs the session.
func (j *JWT) Encode(s model.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		UserID:    s.UserID,
		Remember:  s.Remember,
		TokenType: typeSession,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Decode verifies signature, expiry and token type and returns the session.
// Every failure wraps ErrInvalidToken.
func (j *JWT) Decode(tokenString string) (model.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.Session{}, ErrInvalidToken
	}
	if claims.TokenType != typeSession {
		return model.Session{}, fmt.Errorf("%w: token type mismatch: %s", ErrInvalidToken, claims.TokenType)
	}
	if claims.UserID == uuid.Nil {
		return model.Session{}, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	s := model.Session{
		ID:       claims.ID,
		UserID:   claims.UserID,
		Remember: claims.Remember,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

