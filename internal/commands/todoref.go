package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrRefRequired indicates no todo reference was provided.
var ErrRefRequired = errors.New("todo reference required")

// ParseTodoRef parses a todo id as printed by the list command.
// A leading '#' is accepted, so "3" and "#3" are the same reference.
func ParseTodoRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrRefRequired
	}
	return parseID(args[0])
}

func parseID(s string) (int, error) {
	digits := strings.TrimPrefix(s, "#")
	if !isAllDigits(digits) {
		return 0, fmt.Errorf("invalid todo reference: %s", s)
	}
	id, err := strconv.Atoi(digits)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid todo reference: %s", s)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
