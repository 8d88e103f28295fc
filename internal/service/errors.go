package service

import (
	"errors"
	"fmt"
)

// Kind classifies a backend failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindAuth
	KindNetwork
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid request"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a backend failure carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around err.
func Wrap(kind Kind, err error, message string) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// Messages used by every Service implementation for missing resources.
const (
	TodoNotFound    = "Todo not found"
	CommentNotFound = "Comment not found"
)
