package compiler

import "errors"

// Errors returned by the compiler.
var (
	// ErrNoInput is returned when there is nothing to compile.
	ErrNoInput = errors.New("no profile documents given")

	// ErrFailed is returned when at least one document failed.
	ErrFailed = errors.New("some profiles failed to compile")
)
