// Package exitcode defines exit codes for the CLI.
package exitcode

import "todosync/internal/service"

// Exit codes returned by every command.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown todo).
	UserError = 1

	// AuthError indicates a missing, invalid or rejected token.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// ForError maps a backend failure to its exit code.
func ForError(err error) int {
	switch service.KindOf(err) {
	case service.KindNotFound, service.KindInvalid:
		return UserError
	case service.KindAuth:
		return AuthError
	default:
		return BackendError
	}
}
