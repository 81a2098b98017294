package todo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-todo-list-api/app/observability/metrics"
	"github.com/FACorreiaa/go-todo-list-api/internal/api/auth"
	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

var _ TodoRepo = (*PostgresTodoRepo)(nil)

// TodoRepo defines the contract for todo persistence. Every method takes the
// owner's userID and bakes it into the query predicate, so a caller can
// never touch another user's rows.
type TodoRepo interface {
	CreateTodo(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error)
	ListTodos(ctx context.Context, userID string) ([]types.Todo, error)

	// UpdateTodo updates only the supplied fields of the given todo.
	// Returns types.ErrNotFound when the id doesn't exist or belongs to
	// another user; the two cases are indistinguishable on purpose.
	UpdateTodo(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) error

	// DeleteTodo removes the todo under the same ownership predicate.
	DeleteTodo(ctx context.Context, userID, todoID string) error
}

type PostgresTodoRepo struct {
	logger *slog.Logger
	pgpool auth.PgxPool
}

func NewPostgresTodoRepo(pgpool auth.PgxPool, logger *slog.Logger) *PostgresTodoRepo {
	return &PostgresTodoRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresTodoRepo) CreateTodo(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error) {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "CreateTodo", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	status := params.Status
	if status == "" {
		status = types.TodoStatusPending
	}

	record := types.Todo{
		ID:     uuid.New().String(),
		UserID: userID,
		Todo:   params.Todo,
		Status: status,
	}

	start := time.Now()
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO todos (id, user_id, todo, status)
         VALUES ($1, $2, $3, $4)
         RETURNING created_at, updated_at`,
		record.ID, record.UserID, record.Todo, record.Status).Scan(&record.CreatedAt, &record.UpdatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	return &record, nil
}

func (r *PostgresTodoRepo) ListTodos(ctx context.Context, userID string) ([]types.Todo, error) {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "ListTodos", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	start := time.Now()
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, user_id, todo, status, created_at, updated_at
         FROM todos WHERE user_id = $1 ORDER BY created_at`,
		userID)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := []types.Todo{}
	for rows.Next() {
		var t types.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Todo, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading todo rows: %w", err)
	}

	return todos, nil
}

func (r *PostgresTodoRepo) UpdateTodo(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) error {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "UpdateTodo", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE todos
         SET todo = COALESCE($1, todo),
             status = COALESCE($2, status),
             updated_at = now()
         WHERE id = $3 AND user_id = $4`,
		params.Todo, params.Status, todoID, userID)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the id doesn't exist or the row is owned by someone
		// else; callers get the same answer either way.
		return fmt.Errorf("todo not found: %w", types.ErrNotFound)
	}

	return nil
}

func (r *PostgresTodoRepo) DeleteTodo(ctx context.Context, userID, todoID string) error {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "DeleteTodo", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx,
		"DELETE FROM todos WHERE id = $1 AND user_id = $2",
		todoID, userID)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("todo not found: %w", types.ErrNotFound)
	}

	return nil
}
