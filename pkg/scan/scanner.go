// Package scan enumerates candidate media files under a source directory.
package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anekos/rename-movies/pkg/models"
	"github.com/anekos/rename-movies/pkg/naming"
	"github.com/anekos/rename-movies/pkg/storage"
)

// DefaultExtensions is the default set of media file extensions considered.
var DefaultExtensions = []string{
	".mkv", ".mp4", ".avi", ".mov", ".m4v", ".wmv", ".webm", ".mpg", ".mpeg", ".ts",
}

// Scanner discovers media files through a storage backend. It never mutates
// the filesystem.
type Scanner struct {
	backend storage.Backend
}

// NewScanner creates a scanner over the given backend
func NewScanner(backend storage.Backend) *Scanner {
	return &Scanner{backend: backend}
}

// Scan enumerates media files under opts.SourceDir, applying the extension
// filter and exclude patterns. Hidden files are skipped. Results are sorted
// by source path so repeated scans of unchanged input are deterministic.
func (s *Scanner) Scan(ctx context.Context, opts models.RenameOptions) ([]models.MediaFile, error) {
	entries, err := s.backend.List(ctx, opts.SourceDir, opts.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate source: %w", err)
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}

	var files []models.MediaFile
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if strings.HasPrefix(entry.Name, ".") {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name))
		if !extSet[ext] {
			continue
		}

		relPath, err := filepath.Rel(opts.SourceDir, entry.Path)
		if err != nil {
			relPath = entry.Name
		}

		if ShouldExclude(relPath, opts.ExcludePatterns) {
			continue
		}

		files = append(files, models.MediaFile{
			SourcePath:   entry.Path,
			RelativePath: relPath,
			Extension:    filepath.Ext(entry.Name),
			Size:         entry.Size,
			ModTime:      entry.ModTime,
			Tokens:       naming.ParseTokens(entry.Name),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].SourcePath < files[j].SourcePath
	})

	return files, nil
}
