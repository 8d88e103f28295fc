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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. It lists the commands of its
// registry, DefaultRegistry when none is set.
type HelpCmd struct {
	registry *Registry
}

// NewHelpCmd returns a help command listing the commands in r.
func NewHelpCmd(r *Registry) *HelpCmd {
	return &HelpCmd{registry: r}
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todosync help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	registry := c.registry
	if registry == nil {
		registry = DefaultRegistry
	}

	cmds := registry.All()
	width := len(config.AppName)
	for _, cmd := range cmds {
		width = max(width, len(cmd.Usage()))
	}

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-*s  %s\n", width, config.AppName, "List all todos")
	for _, cmd := range cmds {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-*s  %s\n", width, cmd.Usage(), synopsis)
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Todo ids are the numbers printed by list; "#3" and "3" are the same id.

Common flags:
  --config <dir>   Override config directory
  --url <url>      Todo API root (default $TODOSYNC_URL or http://localhost:3000/api)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
