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
	Register(&DoneCmd{completed: true})
	Register(&DoneCmd{completed: false})
}

// DoneCmd implements the done and undone commands.
type DoneCmd struct {
	completed bool
}

// NewDoneCmd returns the done (completed=true) or undone command.
func NewDoneCmd(completed bool) *DoneCmd {
	return &DoneCmd{completed: completed}
}

func (c *DoneCmd) Name() string {
	if c.completed {
		return "done"
	}
	return "undone"
}

func (c *DoneCmd) Aliases() []string { return nil }

func (c *DoneCmd) Synopsis() string {
	if c.completed {
		return "Mark a todo completed"
	}
	return "Mark a todo not completed"
}

func (c *DoneCmd) Usage() string      { return "todosync " + c.Name() + " <id>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTodoRef(args)
	if err != nil {
		return reportRef(errOut, err)
	}
	if len(args) > 1 {
		return unexpectedArg(errOut, args[1])
	}

	st := newStore(cfg, svc, errOut)
	todo, code := loadTodo(ctx, st, id, errOut)
	if code != exitcode.Success {
		return code
	}

	todo.Completed = c.completed
	if _, err := st.Update(ctx, todo); err != nil {
		return reportStoreError(errOut, st, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
