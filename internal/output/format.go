// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todosync/internal/service"
	"todosync/internal/store"
)

// FormatTodo formats a todo line for the list view.
// Format: "{ID:>4}  [ ] {TITLE}\n", with [x] for completed todos.
func FormatTodo(w io.Writer, todo service.Todo) {
	fmt.Fprintf(w, "%4d  %s %s\n", todo.ID, checkbox(todo.Completed), normalizeTitle(todo.Title))
}

// FormatTodoDetail formats a todo followed by its comments, one per line,
// indented under the title.
func FormatTodoDetail(w io.Writer, todo service.Todo) {
	FormatTodo(w, todo)
	for _, c := range todo.Comments {
		fmt.Fprintf(w, "        #%d  %s\n", c.ID, normalizeText(c.Text))
	}
}

// FormatStatus renders the store's request state as a single line, or
// nothing when there is nothing to report. A request in flight takes
// precedence over an earlier failure.
func FormatStatus(w io.Writer, snap store.Snapshot) {
	if snap.Status == store.Loading {
		fmt.Fprintln(w, "loading...")
		return
	}
	for _, req := range snap.Ops {
		if req.Status == store.Loading {
			fmt.Fprintln(w, "loading...")
			return
		}
	}
	if snap.Status == store.Failed {
		fmt.Fprintf(w, "error: %s\n", snap.Err)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a todo title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
