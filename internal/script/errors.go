package script

import (
	"errors"
	"fmt"
)

// Errors reported by Check.
var (
	// ErrSyntax is returned when the code is not valid Lua.
	ErrSyntax = errors.New("lua syntax error")

	// ErrUnknownFunction is returned when the code calls a jsprog_
	// function the daemon does not provide.
	ErrUnknownFunction = errors.New("unknown daemon function")

	// ErrArity is returned when a daemon function is called with the
	// wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")

	// ErrCompile is returned when the Lua compiler rejects the chunk.
	ErrCompile = errors.New("lua compile error")
)

// CheckError describes a problem found in a chunk of generated code.
type CheckError struct {
	Chunk   string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Chunk, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Chunk, e.Message)
}

// Unwrap returns the underlying error.
func (e *CheckError) Unwrap() error {
	return e.Err
}
