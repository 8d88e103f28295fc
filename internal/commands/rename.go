package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
)

func init() {
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command.
type RenameCmd struct{}

func (c *RenameCmd) Name() string       { return "rename" }
func (c *RenameCmd) Aliases() []string  { return []string{"edit"} }
func (c *RenameCmd) Synopsis() string   { return "Change a todo's title" }
func (c *RenameCmd) Usage() string      { return "todosync rename <id> <title...>" }
func (c *RenameCmd) NeedsBackend() bool { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTodoRef(args)
	if err != nil {
		return reportRef(errOut, err)
	}

	title := strings.Join(args[1:], " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	st := newStore(cfg, svc, errOut)
	todo, code := loadTodo(ctx, st, id, errOut)
	if code != exitcode.Success {
		return code
	}

	todo.Title = title
	if _, err := st.Update(ctx, todo); err != nil {
		return reportStoreError(errOut, st, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
