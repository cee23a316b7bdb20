//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/gophauth/internal/model"
	repo "github.com/dtroode/gophauth/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "gophauth_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/gophauth_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(username string) model.User {
	return model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuuJ8Z0n1y9bY1jX3m2x1o2p3q4r5s6t7u",
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	u := newUser("bob1")

	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.Equal(t, model.RoleUser, saved.Role)

	byName, err := ur.GetByUsername(ctx, "bob1")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)
	require.Equal(t, u.PasswordHash, byName.PasswordHash)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "bob1", byID.Username)

	_, err = ur.GetByUsername(ctx, "BOB1")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = ur.Create(ctx, newUser("bob1"))
	require.ErrorIs(t, err, model.ErrUsernameTaken)

	clash := newUser("bob2")
	clash.ID = u.ID
	_, err = ur.Create(ctx, clash)
	require.ErrorIs(t, err, model.ErrDuplicateID)
}

func TestSessionRevocationRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	rr := repo.NewSessionRevocationRepository(conn)
	id := uuid.NewString()

	revoked, err := rr.IsRevoked(ctx, id)
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, rr.Revoke(ctx, id, time.Now().Add(time.Hour)))
	require.NoError(t, rr.Revoke(ctx, id, time.Now().Add(time.Minute)), "revoking twice is allowed")

	revoked, err = rr.IsRevoked(ctx, id)
	require.NoError(t, err)
	require.True(t, revoked)

	lapsed := uuid.NewString()
	require.NoError(t, rr.Revoke(ctx, lapsed, time.Now().Add(-time.Minute)))
	revoked, err = rr.IsRevoked(ctx, lapsed)
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestUserRepository_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ur.Create(ctx, newUser("alice"))
		}(i)
	}
	wg.Wait()

	var created, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, model.ErrUsernameTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, created)
	require.Equal(t, workers-1, taken)
}

func TestNewConnection_MigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		conn, err := repo.NewConnection(ctx, dsn)
		require.NoError(t, err)
		require.NoError(t, conn.Ping(ctx))
		_ = conn.Close()
	}
}
