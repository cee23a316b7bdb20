package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the identity binding carried by a client between requests.
type Session struct {
	ID        string
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
	Remember  bool
}

// SessionToken is an encoded session handed to the transport layer.
// A token with Cleared set instructs the transport to drop the client's session.
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
	Remember  bool
	Cleared   bool
}

// SessionRevoker remembers sessions ended before their expiry.
// Entries only need to outlive the session they revoke.
type SessionRevoker interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}
