package todo

import (
	"context"
	"log/slog"

	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

var _ TodoService = (*TodoServiceImpl)(nil)

// TodoService defines identity-scoped todo operations. The userID argument
// is always the authenticated identity; there is no way to act on another
// user's todos through this interface.
type TodoService interface {
	CreateTodo(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error)
	ListTodos(ctx context.Context, userID string) ([]types.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) error
	DeleteTodo(ctx context.Context, userID, todoID string) error
}

type TodoServiceImpl struct {
	logger *slog.Logger
	repo   TodoRepo
}

func NewTodoService(repo TodoRepo, logger *slog.Logger) *TodoServiceImpl {
	return &TodoServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *TodoServiceImpl) CreateTodo(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error) {
	return s.repo.CreateTodo(ctx, userID, params)
}

func (s *TodoServiceImpl) ListTodos(ctx context.Context, userID string) ([]types.Todo, error) {
	return s.repo.ListTodos(ctx, userID)
}

func (s *TodoServiceImpl) UpdateTodo(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) error {
	return s.repo.UpdateTodo(ctx, userID, todoID, params)
}

func (s *TodoServiceImpl) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return s.repo.DeleteTodo(ctx, userID, todoID)
}
