// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"todosync/internal/repo"
	"todosync/internal/service"
)

// Method names accepted by FakeService.Calls and passed to Hook.
const (
	MethodListTodos     = "ListTodos"
	MethodGetTodo       = "GetTodo"
	MethodCreateTodo    = "CreateTodo"
	MethodUpdateTodo    = "UpdateTodo"
	MethodDeleteTodo    = "DeleteTodo"
	MethodAddComment    = "AddComment"
	MethodUpdateComment = "UpdateComment"
	MethodDeleteComment = "DeleteComment"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It delegates to repo.Memory and adds error injection and call counting.
type FakeService struct {
	mem *repo.Memory

	mu    sync.Mutex
	calls map[string]int

	// ListResult, when non-nil, is returned verbatim by ListTodos.
	ListResult []service.Todo

	// Hook, when set, runs at the start of every call (before error injection).
	Hook func(method string)

	// Error injection for testing
	ListTodosErr     error
	GetTodoErr       error
	CreateTodoErr    error
	UpdateTodoErr    error
	DeleteTodoErr    error
	AddCommentErr    error
	UpdateCommentErr error
	DeleteCommentErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		mem:   repo.NewMemory(),
		calls: make(map[string]int),
	}
}

// AddTodo stores a todo directly, bypassing call counting and error injection.
func (f *FakeService) AddTodo(title string, completed bool) service.Todo {
	t, _ := f.mem.CreateTodo(context.Background(), service.Draft{Title: title, Completed: completed})
	return t
}

// AddTodoComment stores a comment directly, bypassing call counting and error injection.
func (f *FakeService) AddTodoComment(todoID int, text string) service.Comment {
	c, _ := f.mem.AddComment(context.Background(), todoID, text)
	return c
}

// Stored returns the backend's current todos without counting a call.
func (f *FakeService) Stored() []service.Todo {
	todos, _ := f.mem.ListTodos(context.Background())
	return todos
}

// Calls returns how many times method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of invocations across all methods.
func (f *FakeService) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	hook := f.Hook
	f.mu.Unlock()

	if hook != nil {
		hook(method)
	}
}

// ListTodos implements service.Service.
func (f *FakeService) ListTodos(ctx context.Context) ([]service.Todo, error) {
	f.record(MethodListTodos)
	if f.ListTodosErr != nil {
		return nil, f.ListTodosErr
	}
	if f.ListResult != nil {
		result := make([]service.Todo, len(f.ListResult))
		copy(result, f.ListResult)
		return result, nil
	}
	return f.mem.ListTodos(ctx)
}

// GetTodo implements service.Service.
func (f *FakeService) GetTodo(ctx context.Context, id int) (service.Todo, error) {
	f.record(MethodGetTodo)
	if f.GetTodoErr != nil {
		return service.Todo{}, f.GetTodoErr
	}
	return f.mem.GetTodo(ctx, id)
}

// CreateTodo implements service.Service.
func (f *FakeService) CreateTodo(ctx context.Context, draft service.Draft) (service.Todo, error) {
	f.record(MethodCreateTodo)
	if f.CreateTodoErr != nil {
		return service.Todo{}, f.CreateTodoErr
	}
	return f.mem.CreateTodo(ctx, draft)
}

// UpdateTodo implements service.Service.
func (f *FakeService) UpdateTodo(ctx context.Context, todo service.Todo) (service.Todo, error) {
	f.record(MethodUpdateTodo)
	if f.UpdateTodoErr != nil {
		return service.Todo{}, f.UpdateTodoErr
	}
	return f.mem.UpdateTodo(ctx, todo)
}

// DeleteTodo implements service.Service.
func (f *FakeService) DeleteTodo(ctx context.Context, id int) error {
	f.record(MethodDeleteTodo)
	if f.DeleteTodoErr != nil {
		return f.DeleteTodoErr
	}
	return f.mem.DeleteTodo(ctx, id)
}

// AddComment implements service.Service.
func (f *FakeService) AddComment(ctx context.Context, todoID int, text string) (service.Comment, error) {
	f.record(MethodAddComment)
	if f.AddCommentErr != nil {
		return service.Comment{}, f.AddCommentErr
	}
	return f.mem.AddComment(ctx, todoID, text)
}

// UpdateComment implements service.Service.
func (f *FakeService) UpdateComment(ctx context.Context, todoID int, c service.Comment) (service.Comment, error) {
	f.record(MethodUpdateComment)
	if f.UpdateCommentErr != nil {
		return service.Comment{}, f.UpdateCommentErr
	}
	return f.mem.UpdateComment(ctx, todoID, c)
}

// DeleteComment implements service.Service.
func (f *FakeService) DeleteComment(ctx context.Context, todoID, commentID int) error {
	f.record(MethodDeleteComment)
	if f.DeleteCommentErr != nil {
		return f.DeleteCommentErr
	}
	return f.mem.DeleteComment(ctx, todoID, commentID)
}
