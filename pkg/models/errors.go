package models

import (
	"fmt"
	"strings"
)

// InvalidInputError indicates bad source/destination arguments.
// It is fatal and reported before any filesystem mutation is attempted.
type InvalidInputError struct {
	Path    string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Path, e.Message)
}

// CollisionError indicates that two or more source files map to the same
// destination. It is fatal unless disambiguation is enabled.
type CollisionError struct {
	Destination string
	Sources     []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("destination %q claimed by multiple sources: %s",
		e.Destination, strings.Join(e.Sources, ", "))
}

// PreconditionError indicates a per-operation precondition failure during
// apply (source vanished, destination appeared). It fails the single
// operation, not the whole batch, unless atomic mode is active.
type PreconditionError struct {
	Source      string
	Destination string
	Message     string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed for %q -> %q: %s",
		e.Source, e.Destination, e.Message)
}

// FilesystemError indicates an I/O failure while applying an operation.
// In atomic mode it triggers rollback of previously applied operations.
type FilesystemError struct {
	Path string
	Op   string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem %s failed for %q: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// ValidationError represents a configuration or option validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
