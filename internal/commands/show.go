package commands

import (
	"context"
	"flag"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/output"
	"todosync/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show a todo with its comments" }
func (c *ShowCmd) Usage() string      { return "todosync show <id>" }
func (c *ShowCmd) NeedsBackend() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTodoRef(args)
	if err != nil {
		return reportRef(errOut, err)
	}
	if len(args) > 1 {
		return unexpectedArg(errOut, args[1])
	}

	todo, err := svc.GetTodo(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	output.FormatTodoDetail(out, todo)
	return exitcode.Success
}
