package store

import "todosync/internal/service"

// Status is the lifecycle of a request.
type Status int

const (
	Idle Status = iota
	Loading
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Op identifies an operation class.
type Op int

const (
	OpList Op = iota
	OpCreate
	OpUpdate
	OpDelete

	opCount
)

func (o Op) String() string {
	switch o {
	case OpList:
		return "list"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

func (o Op) valid() bool { return o >= 0 && o < opCount }

// Request is the status and last error of one operation class.
type Request struct {
	Status Status
	Err    string
}

// Snapshot is a point-in-time copy of a Store.
//
// Status and Err are shared by all operations and reflect whichever request
// touched them last. Ops keeps a separate pair per operation class.
type Snapshot struct {
	Todos  []service.Todo
	Status Status
	Err    string
	Ops    map[Op]Request
}
