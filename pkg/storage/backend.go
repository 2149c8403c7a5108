package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Backend defines the interface for filesystem operations used by the
// planner and executor. Paths are absolute. Implementations include the
// local filesystem; tests may substitute fakes to inject failures.
type Backend interface {
	// List returns the files directly under dir, or the whole subtree
	// when recursive is set. Directories themselves are not returned.
	List(ctx context.Context, dir string, recursive bool) ([]FileInfo, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Rename moves a file from oldPath to newPath
	Rename(ctx context.Context, oldPath, newPath string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// Remove deletes a single file or empty directory
	Remove(ctx context.Context, path string) error

	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Close releases any resources held by the backend
	Close() error
}
