// Package repo provides server-side implementations of service.Service.
package repo

import (
	"context"
	"sync"

	"todosync/internal/service"
)

// Memory is an in-memory todo repository.
// Todo ids come from a counter and are never reused after a delete.
type Memory struct {
	mu     sync.RWMutex
	todos  []service.Todo
	nextID int
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{todos: []service.Todo{}, nextID: 1}
}

// ListTodos implements service.Service.
func (m *Memory) ListTodos(ctx context.Context) ([]service.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]service.Todo, len(m.todos))
	for i, t := range m.todos {
		result[i] = t.Clone()
	}
	return result, nil
}

// GetTodo implements service.Service.
func (m *Memory) GetTodo(ctx context.Context, id int) (service.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return service.Todo{}, service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	return m.todos[i].Clone(), nil
}

// CreateTodo implements service.Service.
func (m *Memory) CreateTodo(ctx context.Context, draft service.Draft) (service.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo := service.Todo{
		ID:        m.nextID,
		Title:     draft.Title,
		Completed: draft.Completed,
	}
	m.nextID++
	m.todos = append(m.todos, todo)
	return todo.Clone(), nil
}

// UpdateTodo implements service.Service.
func (m *Memory) UpdateTodo(ctx context.Context, todo service.Todo) (service.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(todo.ID)
	if i < 0 {
		return service.Todo{}, service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	m.todos[i].Title = todo.Title
	m.todos[i].Completed = todo.Completed
	return m.todos[i].Clone(), nil
}

// DeleteTodo implements service.Service.
func (m *Memory) DeleteTodo(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	m.todos = append(m.todos[:i], m.todos[i+1:]...)
	return nil
}

// AddComment implements service.Service.
func (m *Memory) AddComment(ctx context.Context, todoID int, text string) (service.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(todoID)
	if i < 0 {
		return service.Comment{}, service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	c := service.Comment{ID: nextCommentID(m.todos[i].Comments), Text: text}
	m.todos[i].Comments = append(m.todos[i].Comments, c)
	return c, nil
}

// UpdateComment implements service.Service.
func (m *Memory) UpdateComment(ctx context.Context, todoID int, c service.Comment) (service.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(todoID)
	if i < 0 {
		return service.Comment{}, service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	for j, existing := range m.todos[i].Comments {
		if existing.ID == c.ID {
			m.todos[i].Comments[j].Text = c.Text
			return m.todos[i].Comments[j], nil
		}
	}
	return service.Comment{}, service.Errorf(service.KindNotFound, service.CommentNotFound)
}

// DeleteComment implements service.Service.
func (m *Memory) DeleteComment(ctx context.Context, todoID, commentID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(todoID)
	if i < 0 {
		return service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	comments := m.todos[i].Comments
	for j, c := range comments {
		if c.ID == commentID {
			m.todos[i].Comments = append(comments[:j], comments[j+1:]...)
			return nil
		}
	}
	return service.Errorf(service.KindNotFound, service.CommentNotFound)
}

// indexOf returns the slice index of the todo with id, or -1.
// Callers must hold m.mu.
func (m *Memory) indexOf(id int) int {
	for i, t := range m.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextCommentID returns one past the highest comment id on a todo.
func nextCommentID(comments []service.Comment) int {
	highest := 0
	for _, c := range comments {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest + 1
}
