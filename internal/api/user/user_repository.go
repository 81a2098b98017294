package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-todo-list-api/app/observability/metrics"
	"github.com/FACorreiaa/go-todo-list-api/internal/api/auth"
	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

const uniqueViolationCode = "23505"

// ProfileUpdate carries the columns to change on a user row. The password
// arrives here already hashed; plaintext never reaches the repository.
type ProfileUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo defines the contract for user profile persistence.
type UserRepo interface {
	// GetUserProfile retrieves the client-visible profile fields.
	// Returns types.ErrNotFound if the user doesn't exist.
	GetUserProfile(ctx context.Context, userID string) (*types.UserProfile, error)

	// UpdateProfile updates only the supplied fields.
	// Returns types.ErrNotFound if the user doesn't exist and
	// types.ErrConflict if the new email is already taken.
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool auth.PgxPool
}

func NewPostgresUserRepo(pgpool auth.PgxPool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresUserRepo) GetUserProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	var profile types.UserProfile
	start := time.Now()
	err := r.pgpool.QueryRow(ctx,
		"SELECT username, email FROM users WHERE id = $1",
		userID).Scan(&profile.Username, &profile.Email)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", types.ErrNotFound)
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to query user profile: %w", err)
	}

	return &profile, nil
}

func (r *PostgresUserRepo) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "UpdateProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpdateProfile"), slog.String("userID", userID))

	var setClauses []string
	var args []interface{}
	argID := 1

	if update.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *update.Username)
		argID++
	}
	if update.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, *update.Email)
		argID++
	}
	if update.PasswordHash != nil {
		setClauses = append(setClauses, fmt.Sprintf("password_hash = $%d", argID))
		args = append(args, *update.PasswordHash)
		argID++
	}

	if len(setClauses) == 0 {
		l.WarnContext(ctx, "UpdateProfile called with no fields to update")
		return nil
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argID)
	args = append(args, userID)

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx, query, args...)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("email already registered: %w", types.ErrConflict)
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for update: %w", types.ErrNotFound)
	}

	return nil
}
