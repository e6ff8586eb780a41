package vfs

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error carries exactly one of these in Kind, so callers
// can branch with errors.Is instead of inspecting messages.
var (
	// ErrNotInitialized is returned by every operation after Terminate.
	ErrNotInitialized = errors.New("filesystem is not initialized")

	// ErrNotFound indicates a logical path that no layer provides.
	ErrNotFound = errors.New("not found")

	// ErrIO wraps read, write and archive failures reported by the backend.
	ErrIO = errors.New("i/o failure")

	// ErrNoWriteDir indicates a write attempted before any write directory was set.
	ErrNoWriteDir = errors.New("no write directory set")

	// ErrBadWriteDir indicates a write directory that is missing or not a directory.
	ErrBadWriteDir = errors.New("invalid write directory")

	// ErrInvalidPath indicates a logical path that escapes the namespace root.
	ErrInvalidPath = errors.New("invalid logical path")

	// ErrUnsupported indicates a mount source that is neither a directory nor a known archive.
	ErrUnsupported = errors.New("unsupported archive format")
)

// Operation names used in errors and log entries.
const (
	OpInit        = "init"
	OpTerminate   = "terminate"
	OpSetWriteDir = "set-write-dir"
	OpMount       = "mount"
	OpStat        = "stat"
	OpLoad        = "load"
	OpSave        = "save"
	OpList        = "list"
	OpMkdir       = "mkdir"
	OpRemove      = "remove"
)

// Error describes a failed operation together with the logical (or host) path involved.
type Error struct {
	Op   string // Operation that failed
	Path string // Logical path, or host path for mount and write-dir operations
	Kind error  // One of the Err* kinds above
	Err  error  // Backend diagnostic, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return fmt.Sprintf("%s %q: %s", e.Op, e.Path, msg)
}

// Unwrap exposes both the kind and the backend error to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of a vfs error, or nil when err did not come from this package.
func KindOf(err error) error {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr.Kind
	}
	return nil
}

func newError(op, path string, kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}
