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
	Register(&CommentCmd{})
	Register(&EditCommentCmd{})
	Register(&RmCommentCmd{})
}

// CommentCmd implements the comment command.
type CommentCmd struct{}

func (c *CommentCmd) Name() string       { return "comment" }
func (c *CommentCmd) Aliases() []string  { return nil }
func (c *CommentCmd) Synopsis() string   { return "Add a comment to a todo" }
func (c *CommentCmd) Usage() string      { return "todosync comment <id> <text...>" }
func (c *CommentCmd) NeedsBackend() bool { return true }

func (c *CommentCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CommentCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTodoRef(args)
	if err != nil {
		return reportRef(errOut, err)
	}

	text := strings.Join(args[1:], " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: comment text required")
		return exitcode.UserError
	}

	comment, err := svc.AddComment(ctx, id, text)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", comment.ID)
	}
	return exitcode.Success
}

// EditCommentCmd implements the editcomment command.
type EditCommentCmd struct{}

func (c *EditCommentCmd) Name() string      { return "editcomment" }
func (c *EditCommentCmd) Aliases() []string { return nil }
func (c *EditCommentCmd) Synopsis() string  { return "Replace a comment's text" }
func (c *EditCommentCmd) Usage() string {
	return "todosync editcomment <id> <comment-id> <text...>"
}
func (c *EditCommentCmd) NeedsBackend() bool { return true }

func (c *EditCommentCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCommentCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTodoRef(args)
	if err != nil {
		return reportRef(errOut, err)
	}
	commentID, code := parseCommentRef(args, errOut)
	if code != exitcode.Success {
		return code
	}

	text := strings.Join(args[2:], " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: comment text required")
		return exitcode.UserError
	}

	if _, err := svc.UpdateComment(ctx, id, service.Comment{ID: commentID, Text: text}); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RmCommentCmd implements the rmcomment command.
type RmCommentCmd struct{}

func (c *RmCommentCmd) Name() string       { return "rmcomment" }
func (c *RmCommentCmd) Aliases() []string  { return nil }
func (c *RmCommentCmd) Synopsis() string   { return "Delete a comment" }
func (c *RmCommentCmd) Usage() string      { return "todosync rmcomment <id> <comment-id>" }
func (c *RmCommentCmd) NeedsBackend() bool { return true }

func (c *RmCommentCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCommentCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTodoRef(args)
	if err != nil {
		return reportRef(errOut, err)
	}
	commentID, code := parseCommentRef(args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(args) > 2 {
		return unexpectedArg(errOut, args[2])
	}

	if err := svc.DeleteComment(ctx, id, commentID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseCommentRef reads the comment id that follows the todo reference.
func parseCommentRef(args []string, errOut io.Writer) (int, int) {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: comment id required")
		return 0, exitcode.UserError
	}
	commentID, err := parseID(args[1])
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid comment id: %s\n", args[1])
		return 0, exitcode.UserError
	}
	return commentID, exitcode.Success
}
