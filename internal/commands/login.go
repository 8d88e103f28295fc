package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. The token is issued by the server
// operator (todoserver -issue-token) and stored as token.json.
type LoginCmd struct {
	token string
	in    io.Reader
}

// SetInput sets the reader the token is read from when --token is not given
// (for testing).
func (c *LoginCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Store an API token" }
func (c *LoginCmd) Usage() string      { return "todosync login [--token <token>]" }
func (c *LoginCmd) NeedsBackend() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	raw := strings.TrimSpace(c.token)
	if raw == "" {
		in := c.in
		if in == nil {
			in = os.Stdin
		}
		fmt.Fprintln(errOut, "Paste the API token and press enter:")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			fmt.Fprintf(errOut, "error: failed to read token: %v\n", err)
			return exitcode.AuthError
		}
		raw = strings.TrimSpace(line)
	}
	raw = strings.TrimPrefix(raw, "Bearer ")
	if raw == "" {
		fmt.Fprintln(errOut, "error: token required")
		return exitcode.AuthError
	}

	token := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if err := cfg.SaveToken(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
