package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/gophauth/internal/model"
)

var _ model.SessionRevoker = (*SessionRevocationRepository)(nil)

// SessionRevocationRepository stores revoked session ids so every
// instance sharing the database honours a logout.
type SessionRevocationRepository struct {
	db  DB
	now func() time.Time
}

func NewSessionRevocationRepository(db DB) *SessionRevocationRepository {
	return &SessionRevocationRepository{
		db:  db,
		now: time.Now,
	}
}

// Revoke records id until the given time and drops rows that have lapsed.
func (r *SessionRevocationRepository) Revoke(ctx context.Context, id string, until time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `DELETE FROM revoked_sessions WHERE expires_at <= $1`, r.now())
	if err != nil {
		return fmt.Errorf("failed to prune revoked sessions: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO revoked_sessions (id, expires_at) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET expires_at = GREATEST(revoked_sessions.expires_at, EXCLUDED.expires_at)`,
		id, until)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit session revocation: %w", err)
	}

	return nil
}

func (r *SessionRevocationRepository) IsRevoked(ctx context.Context, id string) (bool, error) {
	var revoked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE id = $1 AND expires_at > $2)`,
		id, r.now(),
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}

	return revoked, nil
}
