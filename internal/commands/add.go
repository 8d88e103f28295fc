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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	done bool
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a todo" }
func (c *AddCmd) Usage() string      { return "todosync add [--done] <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.done, "done", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	st := newStore(cfg, svc, errOut)
	todo, err := st.Create(ctx, service.Draft{Title: title, Completed: c.done})
	if err != nil {
		return reportStoreError(errOut, st, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", todo.ID)
	}
	return exitcode.Success
}
