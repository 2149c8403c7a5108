// Package compare decides whether two files hold identical content. The
// executor uses it for the skip-identical policy: a destination that already
// exists with the same content is skipped rather than failed.
package compare

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/anekos/rename-movies/pkg/storage"
)

// Comparator reports whether two files are identical
type Comparator interface {
	// Identical compares the files at pathA and pathB
	Identical(ctx context.Context, backend storage.Backend, pathA, pathB string) (bool, error)

	// Name returns the comparator name
	Name() string
}

// SizeComparator compares by file size only. Fast but weak; a size match
// does not prove identity.
type SizeComparator struct{}

// NewSizeComparator creates a size-only comparator
func NewSizeComparator() *SizeComparator {
	return &SizeComparator{}
}

// Name returns the comparator name
func (c *SizeComparator) Name() string {
	return "size"
}

// Identical compares the two files by size
func (c *SizeComparator) Identical(ctx context.Context, backend storage.Backend, pathA, pathB string) (bool, error) {
	infoA, err := backend.Stat(ctx, pathA)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", pathA, err)
	}
	infoB, err := backend.Stat(ctx, pathB)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", pathB, err)
	}
	return infoA.Size == infoB.Size, nil
}

// HashComparator compares by SHA-256 digest, short-circuiting on a size
// mismatch before reading any content.
type HashComparator struct {
	bufferSize int
}

// NewHashComparator creates a SHA-256 comparator. bufferSize <= 0 selects
// the 64 KiB default.
func NewHashComparator(bufferSize int) *HashComparator {
	if bufferSize <= 0 {
		bufferSize = 64 * 1024
	}
	return &HashComparator{bufferSize: bufferSize}
}

// Name returns the comparator name
func (c *HashComparator) Name() string {
	return "hash"
}

// Identical compares the two files by size, then by SHA-256 digest
func (c *HashComparator) Identical(ctx context.Context, backend storage.Backend, pathA, pathB string) (bool, error) {
	sizeMatch, err := NewSizeComparator().Identical(ctx, backend, pathA, pathB)
	if err != nil {
		return false, err
	}
	if !sizeMatch {
		return false, nil
	}

	hashA, err := c.hashFile(ctx, backend, pathA)
	if err != nil {
		return false, err
	}
	hashB, err := c.hashFile(ctx, backend, pathB)
	if err != nil {
		return false, err
	}

	return hashA == hashB, nil
}

// hashFile computes the SHA-256 digest of a file
func (c *HashComparator) hashFile(ctx context.Context, backend storage.Backend, path string) (string, error) {
	reader, err := backend.Open(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer reader.Close()

	hasher := sha256.New()
	buf := make([]byte, c.bufferSize)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
