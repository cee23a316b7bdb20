package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/gophauth/internal/model"
)

var _ model.SessionRevoker = (*SessionDenylist)(nil)

// SessionDenylist holds revoked session ids until their tokens expire.
type SessionDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewSessionDenylist() *SessionDenylist {
	return &SessionDenylist{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke denies id until the given time. Entries already past their
// expiry are pruned on every call.
func (d *SessionDenylist) Revoke(ctx context.Context, id string, until time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, k)
		}
	}
	if until.After(now) {
		d.revoked[id] = until
	}
	return nil
}

func (d *SessionDenylist) IsRevoked(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[id]
	return ok && exp.After(d.now()), nil
}
