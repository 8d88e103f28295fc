// Package service defines the backend-agnostic interface for todo operations.
package service

import "context"

// Service defines the interface for todo backend operations.
// The REST client, the server repositories and the test fake all implement it;
// the store and the commands never talk HTTP directly.
type Service interface {
	// ListTodos returns every todo in server order.
	ListTodos(ctx context.Context) ([]Todo, error)

	// GetTodo returns a single todo by id.
	GetTodo(ctx context.Context, id int) (Todo, error)

	// CreateTodo submits a draft and returns the stored todo with its assigned id.
	CreateTodo(ctx context.Context, draft Draft) (Todo, error)

	// UpdateTodo replaces title and completed of the todo with todo.ID.
	UpdateTodo(ctx context.Context, todo Todo) (Todo, error)

	// DeleteTodo removes a todo.
	DeleteTodo(ctx context.Context, id int) error

	// AddComment attaches a new comment to a todo.
	AddComment(ctx context.Context, todoID int, text string) (Comment, error)

	// UpdateComment replaces the text of comment c.ID on a todo.
	UpdateComment(ctx context.Context, todoID int, c Comment) (Comment, error)

	// DeleteComment removes a comment from a todo.
	DeleteComment(ctx context.Context, todoID, commentID int) error
}
