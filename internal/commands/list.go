package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/output"
	"todosync/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todosync` (no args) and `todosync list`.
type ListCmd struct {
	open bool
}

// SetOpenOnly hides completed todos (for testing).
func (c *ListCmd) SetOpenOnly(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List todos" }
func (c *ListCmd) Usage() string      { return "todosync list [--open]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return unexpectedArg(errOut, args[0])
	}

	st := newStore(cfg, svc, errOut)
	if err := st.List(ctx); err != nil {
		return reportStoreError(errOut, st, err)
	}

	shown := 0
	for _, todo := range st.Todos() {
		if c.open && todo.Completed {
			continue
		}
		output.FormatTodo(out, todo)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no todos found")
	}
	return exitcode.Success
}
