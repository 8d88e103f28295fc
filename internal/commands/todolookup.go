package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/logging"
	"todosync/internal/output"
	"todosync/internal/service"
	"todosync/internal/store"
)

// newStore builds the store a command works against. With --debug every
// state transition is logged to errOut.
func newStore(cfg *config.Config, svc service.Service, errOut io.Writer) *store.Store {
	log := logging.NewCLI(errOut, cfg.Debug)
	st := store.New(svc, store.WithLogger(log))
	if cfg.Debug {
		st.Subscribe(func(snap store.Snapshot) {
			log.Debug("store state", "status", snap.Status, "todos", len(snap.Todos), "error", snap.Err)
		})
	}
	return st
}

// findCached returns the cached todo with id.
func findCached(st *store.Store, id int) (service.Todo, bool) {
	for _, t := range st.Todos() {
		if t.ID == id {
			return t, true
		}
	}
	return service.Todo{}, false
}

// reportRef prints a todo reference parse error.
func reportRef(errOut io.Writer, err error) int {
	if errors.Is(err, ErrRefRequired) {
		fmt.Fprintln(errOut, "error: todo reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

// unexpectedArg rejects a positional argument the command does not take.
func unexpectedArg(errOut io.Writer, arg string) int {
	fmt.Fprintf(errOut, "error: unexpected argument: %s\n", arg)
	return exitcode.UserError
}

// reportStoreError prints the store's failure and maps err to an exit code.
func reportStoreError(errOut io.Writer, st *store.Store, err error) int {
	if errors.Is(err, store.ErrMissingID) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	output.FormatStatus(errOut, st.Snapshot())
	return exitcode.ForError(err)
}

// reportError prints a backend error from a direct service call.
func reportError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.ForError(err)
}

// loadTodo refreshes the store and looks up id in the result.
// On failure it reports the error and returns a non-zero exit code.
func loadTodo(ctx context.Context, st *store.Store, id int, errOut io.Writer) (service.Todo, int) {
	if err := st.List(ctx); err != nil {
		return service.Todo{}, reportStoreError(errOut, st, err)
	}
	todo, ok := findCached(st, id)
	if !ok {
		fmt.Fprintf(errOut, "error: todo not found: %d\n", id)
		return service.Todo{}, exitcode.UserError
	}
	return todo, exitcode.Success
}
