// Package store mirrors a remote todo collection on the client side.
//
// A Store owns the locally cached Collection and the request status of the
// operations that keep it in sync. State only changes when the backend
// confirms an operation; failures leave the Collection untouched and record
// the backend's message.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"todosync/internal/service"
)

// ErrMissingID is returned when an operation that needs a server-assigned id
// is invoked without one. Nothing is sent to the backend.
var ErrMissingID = errors.New("todo id required")

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is a client-side cache of the remote todo collection.
// It is safe for concurrent use; the lock is never held across a backend call.
type Store struct {
	svc service.Service
	log *slog.Logger

	// pubMu orders transitions together with their delivery to subscribers.
	// It is taken before mu.
	pubMu sync.Mutex

	mu     sync.Mutex
	todos  []service.Todo
	status Status
	err    string
	ops    [opCount]Request

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// New creates an empty Store backed by svc.
func New(svc service.Service, opts ...Option) *Store {
	s := &Store{
		svc:   svc,
		log:   slog.New(slog.DiscardHandler),
		todos: []service.Todo{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List fetches the full remote collection and replaces the cached one with it,
// preserving server order.
func (s *Store) List(ctx context.Context) error {
	s.begin(OpList)

	todos, err := s.svc.ListTodos(ctx)
	if err != nil {
		s.fail(OpList, err)
		return err
	}

	s.succeed(OpList, func() {
		s.todos = cloneTodos(todos)
	})
	return nil
}

// Create submits draft and appends the todo returned by the backend.
// Titles are not validated here.
func (s *Store) Create(ctx context.Context, draft service.Draft) (service.Todo, error) {
	s.begin(OpCreate)

	todo, err := s.svc.CreateTodo(ctx, draft)
	if err != nil {
		s.fail(OpCreate, err)
		return service.Todo{}, err
	}

	s.succeed(OpCreate, func() {
		s.todos = append(s.todos, todo.Clone())
	})
	return todo, nil
}

// Update submits todo as a full replacement and swaps the cached entry with
// the same id for the backend's result. A todo that is not cached is not
// inserted.
func (s *Store) Update(ctx context.Context, todo service.Todo) (service.Todo, error) {
	if todo.ID <= 0 {
		return service.Todo{}, ErrMissingID
	}

	s.begin(OpUpdate)

	updated, err := s.svc.UpdateTodo(ctx, todo)
	if err != nil {
		s.fail(OpUpdate, err)
		return service.Todo{}, err
	}

	s.succeed(OpUpdate, func() {
		if i := s.indexOf(updated.ID); i >= 0 {
			s.todos[i] = updated.Clone()
		}
	})
	return updated, nil
}

// Delete removes the todo with id from the backend and then from the cache.
//
// An id that is not in the cache is a no-op: the backend is not called and
// the status is left as is.
func (s *Store) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrMissingID
	}

	s.mu.Lock()
	cached := s.indexOf(id) >= 0
	s.mu.Unlock()
	if !cached {
		s.log.Debug("delete skipped, todo not cached", "id", id)
		return nil
	}

	s.begin(OpDelete)

	if err := s.svc.DeleteTodo(ctx, id); err != nil {
		s.fail(OpDelete, err)
		return err
	}

	s.succeed(OpDelete, func() {
		if i := s.indexOf(id); i >= 0 {
			s.todos = append(s.todos[:i:i], s.todos[i+1:]...)
		}
	})
	return nil
}

// Todos returns a copy of the cached collection.
func (s *Store) Todos() []service.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTodos(s.todos)
}

// Status returns the status of the most recently settled (or started) request.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the last failure message, or "" if the latest request has not failed.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// OpState returns the status and error of a single operation class.
func (s *Store) OpState(op Op) Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !op.valid() {
		return Request{}
	}
	return s.ops[op]
}

// Snapshot returns a consistent copy of the whole store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state transition.
// Subscribers are called in registration order, outside the store lock, and
// see transitions in the order they were applied: the next transition waits
// until every subscriber has returned. fn may read the store but must not
// start an operation on it.
// The returned function unregisters fn.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// begin moves op (and the shared status) to Loading and clears the error.
func (s *Store) begin(op Op) {
	s.transition(func() {
		s.status = Loading
		s.err = ""
		s.ops[op] = Request{Status: Loading}
	})
	s.log.Debug("request started", "op", op)
}

// succeed applies mutate and marks op as Succeeded.
func (s *Store) succeed(op Op, mutate func()) {
	s.transition(func() {
		mutate()
		s.status = Succeeded
		s.ops[op] = Request{Status: Succeeded}
	})
	s.log.Debug("request succeeded", "op", op)
}

// fail records err against op without touching the collection.
func (s *Store) fail(op Op, err error) {
	msg := err.Error()
	s.transition(func() {
		s.status = Failed
		s.err = msg
		s.ops[op] = Request{Status: Failed, Err: msg}
	})
	s.log.Debug("request failed", "op", op, "kind", service.KindOf(err), "error", msg)
}

func (s *Store) transition(apply func()) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	apply()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	subs := append([]subscriber(nil), s.subs...)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Todos:  cloneTodos(s.todos),
		Status: s.status,
		Err:    s.err,
		Ops:    make(map[Op]Request, opCount),
	}
	for op := Op(0); op < opCount; op++ {
		snap.Ops[op] = s.ops[op]
	}
	return snap
}

// indexOf returns the cache index of the todo with id, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTodos(todos []service.Todo) []service.Todo {
	out := make([]service.Todo, len(todos))
	for i, t := range todos {
		out[i] = t.Clone()
	}
	return out
}
