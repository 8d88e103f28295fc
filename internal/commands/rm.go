package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a todo" }
func (c *RmCmd) Usage() string      { return "todosync rm <id>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTodoRef(args)
	if err != nil {
		return reportRef(errOut, err)
	}
	if len(args) > 1 {
		return unexpectedArg(errOut, args[1])
	}

	// The store ignores ids it has not cached, so report them here.
	st := newStore(cfg, svc, errOut)
	if _, code := loadTodo(ctx, st, id, errOut); code != exitcode.Success {
		return code
	}

	if err := st.Delete(ctx, id); err != nil {
		return reportStoreError(errOut, st, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
