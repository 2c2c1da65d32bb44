// Package watcher reports changes to profile documents.
//
// A Source delivers raw file system events; Watcher debounces them per
// path and hands each settled change to a handler on the caller's
// goroutine.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
	ErrNotDirectory  = errors.New("path is not a directory")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Gone returns true if the file no longer exists under its path after
// the operation.
func (op Op) Gone() bool {
	return (op.Has(OpRemove) || op.Has(OpRename)) && !op.Has(OpCreate) && !op.Has(OpWrite)
}

// Event represents a file system change event.
type Event struct {
	// Path is the absolute path of the affected file.
	Path string

	// Op is the operation that occurred. Debounced events combine every
	// operation seen during the delay.
	Op Op

	// Timestamp is when the latest operation occurred.
	Timestamp time.Time
}

// Source delivers file system events.
type Source interface {
	// Events returns the channel of file change events.
	// The channel is closed when the source is closed.
	Events() <-chan Event

	// Errors returns the channel of source errors.
	// The channel is closed when the source is closed.
	Errors() <-chan error

	// Close stops the source and releases resources.
	Close() error
}

// Handler handles a settled change.
type Handler func(event Event)
