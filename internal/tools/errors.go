package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Kind classifies a user-visible tool failure.
type Kind int

const (
	InvalidRequest Kind = iota + 1
	MethodNotFound
)

func (k Kind) String() string {
	switch k {
	case InvalidRequest:
		return "invalid request"
	case MethodNotFound:
		return "method not found"
	default:
		return "unknown"
	}
}

// Error is a terminal failure caused by the caller: bad input, a policy
// violation, a lookup miss or an unknown tool. It unwraps to the matching
// mcp-go sentinel.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case InvalidRequest:
		return mcp.ErrInvalidRequest
	case MethodNotFound:
		return mcp.ErrMethodNotFound
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return &Error{Kind: InvalidRequest, Msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: MethodNotFound, Msg: fmt.Sprintf(format, args...)}
}
