package todo

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/FACorreiaa/go-todo-list-api/app/observability/metrics"
	"github.com/FACorreiaa/go-todo-list-api/internal/api"
	"github.com/FACorreiaa/go-todo-list-api/internal/api/auth"
	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	CreateTodo(w http.ResponseWriter, r *http.Request)
	ListTodos(w http.ResponseWriter, r *http.Request)
	UpdateTodo(w http.ResponseWriter, r *http.Request)
	DeleteTodo(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	todoService TodoService
	logger      *slog.Logger
}

func NewHandlerImpl(todoService TodoService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		todoService: todoService,
		logger:      logger,
	}
}

// verifiedUserID pulls the authenticated identity out of the context. Every
// todo operation is scoped by it; a missing value means the middleware did
// not run, which is a wiring bug, and the request is rejected.
func verifiedUserID(w http.ResponseWriter, r *http.Request, l *slog.Logger) (string, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || userID == "" {
		l.ErrorContext(r.Context(), "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

// CreateTodo godoc
// @Summary      Create Todo
// @Description  Creates a todo owned by the authenticated user. Status defaults to "pending".
// @Tags         Todos
// @Accept       json
// @Produce      json
// @Param        request body types.CreateTodoParams true "Todo fields"
// @Success      201 {object} types.Todo "Created todo"
// @Failure      400 {object} types.Response "Validation failure"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /todos [post]
func (h *HandlerImpl) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateTodo"))
	metrics.Get().TodoOperationsTotal.Add(ctx, 1)

	userID, ok := verifiedUserID(w, r, l)
	if !ok {
		return
	}

	var params types.CreateTodoParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(params.Todo) == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "todo text is required")
		return
	}

	created, err := h.todoService.CreateTodo(ctx, userID, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create todo", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error during todo creation")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, created)
}

// ListTodos godoc
// @Summary      List Todos
// @Description  Returns all todos owned by the authenticated user.
// @Tags         Todos
// @Produce      json
// @Success      200 {array} types.Todo "Todos"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /todos [get]
func (h *HandlerImpl) ListTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "ListTodos"))
	metrics.Get().TodoOperationsTotal.Add(ctx, 1)

	userID, ok := verifiedUserID(w, r, l)
	if !ok {
		return
	}

	todos, err := h.todoService.ListTodos(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list todos", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error during todos retrieval")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, todos)
}

// UpdateTodo godoc
// @Summary      Update Todo
// @Description  Partially updates a todo owned by the authenticated user.
// @Tags         Todos
// @Accept       json
// @Produce      json
// @Param        todoID path string true "Todo ID"
// @Param        request body types.UpdateTodoParams true "Fields to update"
// @Success      200 {object} types.Response "Todo updated"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Todo not found"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /todos/{todoID} [put]
func (h *HandlerImpl) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateTodo"))
	metrics.Get().TodoOperationsTotal.Add(ctx, 1)

	userID, ok := verifiedUserID(w, r, l)
	if !ok {
		return
	}

	todoID := chi.URLParam(r, "todoID")

	var params types.UpdateTodoParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := h.todoService.UpdateTodo(ctx, userID, todoID, params)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "todo not found")
			return
		}
		l.ErrorContext(ctx, "Failed to update todo", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error during todo update")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "todo updated successfully",
	})
}

// DeleteTodo godoc
// @Summary      Delete Todo
// @Description  Deletes a todo owned by the authenticated user.
// @Tags         Todos
// @Produce      json
// @Param        todoID path string true "Todo ID"
// @Success      200 {object} types.Response "Todo deleted"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Todo not found"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /todos/{todoID} [delete]
func (h *HandlerImpl) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteTodo"))
	metrics.Get().TodoOperationsTotal.Add(ctx, 1)

	userID, ok := verifiedUserID(w, r, l)
	if !ok {
		return
	}

	todoID := chi.URLParam(r, "todoID")

	err := h.todoService.DeleteTodo(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "todo not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete todo", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error during todo deletion")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "todo deleted",
	})
}
