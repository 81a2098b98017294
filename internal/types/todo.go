package types

import "time"

// TodoStatusPending is the status assigned to a todo when none is supplied.
const TodoStatusPending = "pending"

// Todo is a task record owned by exactly one user. UserID is set from the
// authenticated identity at creation and never changes afterwards.
type Todo struct {
	ID        string    `json:"id" example:"0b2f0f35-26f7-4f6a-9f3e-9a86a3cfcf0d"`
	UserID    string    `json:"user_id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	Todo      string    `json:"todo" example:"buy milk"`
	Status    string    `json:"status" example:"pending"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTodoParams carries the fields a client may set when creating a todo.
type CreateTodoParams struct {
	Todo   string `json:"todo" example:"buy milk"`
	Status string `json:"status,omitempty" example:"pending"`
}

// UpdateTodoParams carries a partial todo update. Nil means "leave as is".
type UpdateTodoParams struct {
	Todo   *string `json:"todo,omitempty"`
	Status *string `json:"status,omitempty"`
}
