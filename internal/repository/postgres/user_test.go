package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophauth/internal/model"
)

var userColumns = []string{"id", "username", "password_hash", "role", "created_at"}

func TestNewUserRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	assert.NotNil(t, repo)
	assert.Equal(t, mock, repo.db)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      model.User
		wantErr   error
		errMsg    string
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(userColumns).
					AddRow(id, "alice", "$2a$12$hash", model.RoleUser, created)
				mock.ExpectQuery(`FROM users WHERE username = \$1`).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			want: model.User{ID: id, Username: "alice", PasswordHash: "$2a$12$hash", Role: model.RoleUser, CreatedAt: created},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users WHERE username = \$1`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows(userColumns))
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users WHERE username = \$1`).
					WithArgs("alice").
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			got, err := repo.GetByUsername(context.Background(), "alice")

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantErr == model.ErrDuplicateID {
					assert.NotErrorIs(t, err, model.ErrUsernameTaken)
				}
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NotErrorIs(t, err, model.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	id := uuid.New()
	created := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(id, "bob1", "h", model.RoleUser, created))

		got, err := NewUserRepository(mock).GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "bob1", got.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(userColumns))

		_, err = NewUserRepository(mock).GetByID(context.Background(), id)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("deadline exceeded propagates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(context.DeadlineExceeded)

		_, err = NewUserRepository(mock).GetByID(context.Background(), id)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestUserRepository_Create(t *testing.T) {
	user := model.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "$2a$12$hash",
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "inserted and committed",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt).
					WillReturnRows(pgxmock.NewRows(userColumns).
						AddRow(user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt))
				mock.ExpectCommit()
			},
		},
		{
			name: "unique violation maps to username taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"})
				mock.ExpectRollback()
			},
			wantErr: model.ErrUsernameTaken,
		},
		{
			name: "primary key collision is not a username conflict",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_pkey"})
				mock.ExpectRollback()
			},
			wantErr: model.ErrDuplicateID,
		},
		{
			name: "username conflict surfacing at commit",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt).
					WillReturnRows(pgxmock.NewRows(userColumns).
						AddRow(user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt))
				mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"})
				mock.ExpectRollback()
			},
			wantErr: model.ErrUsernameTaken,
		},
		{
			name: "other insert error rolls back",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})
				mock.ExpectRollback()
			},
			errMsg: "failed to create user",
		},
		{
			name: "begin fails",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))
			},
			errMsg: "failed to begin transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			saved, err := NewUserRepository(mock).Create(context.Background(), user)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantErr == model.ErrDuplicateID {
					assert.NotErrorIs(t, err, model.ErrUsernameTaken)
				}
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NotErrorIs(t, err, model.ErrUsernameTaken)
			default:
				require.NoError(t, err)
				assert.Equal(t, user, saved)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
