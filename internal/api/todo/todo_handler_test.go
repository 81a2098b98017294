package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-todo-list-api/internal/api/auth"
	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

type MockTodoService struct {
	mock.Mock
}

func (m *MockTodoService) CreateTodo(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error) {
	args := m.Called(ctx, userID, params)
	if t := args.Get(0); t != nil {
		return t.(*types.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTodoService) ListTodos(ctx context.Context, userID string) ([]types.Todo, error) {
	args := m.Called(ctx, userID)
	if t := args.Get(0); t != nil {
		return t.([]types.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTodoService) UpdateTodo(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) error {
	args := m.Called(ctx, userID, todoID, params)
	return args.Error(0)
}

func (m *MockTodoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	args := m.Called(ctx, userID, todoID)
	return args.Error(0)
}

func authedRequest(t *testing.T, method, target string, body any, userID string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, userID))
	}
	return req
}

func withTodoID(req *http.Request, todoID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("todoID", todoID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestTodoHandler_CreateTodo(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		created := &types.Todo{ID: "t1", UserID: "user123", Todo: "buy milk", Status: "pending"}
		mockSvc.On("CreateTodo", mock.Anything, "user123",
			types.CreateTodoParams{Todo: "buy milk"}).Return(created, nil).Once()

		rr := httptest.NewRecorder()
		h.CreateTodo(rr, authedRequest(t, http.MethodPost, "/todos",
			types.CreateTodoParams{Todo: "buy milk"}, "user123"))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got types.Todo
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "t1", got.ID)
		assert.Equal(t, "pending", got.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("EmptyText", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		rr := httptest.NewRecorder()
		h.CreateTodo(rr, authedRequest(t, http.MethodPost, "/todos",
			types.CreateTodoParams{Todo: "   "}, "user123"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "todo text is required")
		mockSvc.AssertNotCalled(t, "CreateTodo")
	})

	t.Run("MissingIdentity", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		rr := httptest.NewRecorder()
		h.CreateTodo(rr, authedRequest(t, http.MethodPost, "/todos",
			types.CreateTodoParams{Todo: "buy milk"}, ""))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockSvc.AssertNotCalled(t, "CreateTodo")
	})
}

func TestTodoHandler_ListTodos(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		mockSvc.On("ListTodos", mock.Anything, "user123").Return([]types.Todo{
			{ID: "t1", UserID: "user123", Todo: "buy milk", Status: "pending"},
		}, nil).Once()

		rr := httptest.NewRecorder()
		h.ListTodos(rr, authedRequest(t, http.MethodGet, "/todos", nil, "user123"))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got []types.Todo
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "buy milk", got[0].Todo)
		mockSvc.AssertExpectations(t)
	})

	t.Run("EmptyListIsJSONArray", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		mockSvc.On("ListTodos", mock.Anything, "user123").Return([]types.Todo{}, nil).Once()

		rr := httptest.NewRecorder()
		h.ListTodos(rr, authedRequest(t, http.MethodGet, "/todos", nil, "user123"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
		mockSvc.AssertExpectations(t)
	})
}

func TestTodoHandler_UpdateTodo(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		newStatus := "done"
		mockSvc.On("UpdateTodo", mock.Anything, "user123", "t1",
			mock.MatchedBy(func(p types.UpdateTodoParams) bool {
				return p.Status != nil && *p.Status == "done" && p.Todo == nil
			})).Return(nil).Once()

		req := withTodoID(authedRequest(t, http.MethodPut, "/todos/t1",
			types.UpdateTodoParams{Status: &newStatus}, "user123"), "t1")
		rr := httptest.NewRecorder()
		h.UpdateTodo(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		newStatus := "done"
		mockSvc.On("UpdateTodo", mock.Anything, "user123", "ghost", mock.Anything).
			Return(types.ErrNotFound).Once()

		req := withTodoID(authedRequest(t, http.MethodPut, "/todos/ghost",
			types.UpdateTodoParams{Status: &newStatus}, "user123"), "ghost")
		rr := httptest.NewRecorder()
		h.UpdateTodo(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "todo not found")
		mockSvc.AssertExpectations(t)
	})
}

func TestTodoHandler_DeleteTodo(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		mockSvc.On("DeleteTodo", mock.Anything, "user123", "t1").Return(nil).Once()

		req := withTodoID(authedRequest(t, http.MethodDelete, "/todos/t1", nil, "user123"), "t1")
		rr := httptest.NewRecorder()
		h.DeleteTodo(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockSvc := new(MockTodoService)
		h := NewHandlerImpl(mockSvc, testLogger())

		mockSvc.On("DeleteTodo", mock.Anything, "user123", "ghost").
			Return(types.ErrNotFound).Once()

		req := withTodoID(authedRequest(t, http.MethodDelete, "/todos/ghost", nil, "user123"), "ghost")
		rr := httptest.NewRecorder()
		h.DeleteTodo(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockSvc.AssertExpectations(t)
	})
}
