package user

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-todo-list-api/app/observability/metrics"
	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

func strPtr(s string) *string { return &s }

func TestPostgresUserRepo_GetUserProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresUserRepo(mockPool, slog.Default())

		rows := pgxmock.NewRows([]string{"username", "email"}).
			AddRow("alice", "a@x.com")
		mockPool.ExpectQuery("SELECT username, email FROM users").
			WithArgs("user123").
			WillReturnRows(rows)

		profile, err := repo.GetUserProfile(context.Background(), "user123")
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		assert.Equal(t, "a@x.com", profile.Email)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresUserRepo(mockPool, slog.Default())

		mockPool.ExpectQuery("SELECT username, email FROM users").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.GetUserProfile(context.Background(), "ghost")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresUserRepo_UpdateProfile(t *testing.T) {
	t.Run("UsernameOnly", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresUserRepo(mockPool, slog.Default())

		mockPool.ExpectExec("UPDATE users SET username =").
			WithArgs("newname", pgxmock.AnyArg(), "user123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.UpdateProfile(context.Background(), "user123", ProfileUpdate{
			Username: strPtr("newname"),
		})
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("AllFields", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresUserRepo(mockPool, slog.Default())

		mockPool.ExpectExec("UPDATE users SET username =").
			WithArgs("newname", "new@x.com", "new-hash", pgxmock.AnyArg(), "user123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.UpdateProfile(context.Background(), "user123", ProfileUpdate{
			Username:     strPtr("newname"),
			Email:        strPtr("new@x.com"),
			PasswordHash: strPtr("new-hash"),
		})
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NoFields", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresUserRepo(mockPool, slog.Default())

		// No statement expected; an empty update is a no-op.
		err = repo.UpdateProfile(context.Background(), "user123", ProfileUpdate{})
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("EmailConflict", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresUserRepo(mockPool, slog.Default())

		mockPool.ExpectExec("UPDATE users SET email =").
			WithArgs("taken@x.com", pgxmock.AnyArg(), "user123").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err = repo.UpdateProfile(context.Background(), "user123", ProfileUpdate{
			Email: strPtr("taken@x.com"),
		})
		assert.ErrorIs(t, err, types.ErrConflict)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("UserMissing", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresUserRepo(mockPool, slog.Default())

		mockPool.ExpectExec("UPDATE users SET username =").
			WithArgs("newname", pgxmock.AnyArg(), "ghost").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = repo.UpdateProfile(context.Background(), "ghost", ProfileUpdate{
			Username: strPtr("newname"),
		})
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
