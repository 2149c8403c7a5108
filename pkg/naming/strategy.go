// Package naming derives canonical destination names for media files.
package naming

import (
	"context"
	"errors"

	"github.com/anekos/rename-movies/pkg/models"
)

// ErrUnrecognized marks a file the strategy cannot derive a name for.
// The planner skips and reports such files instead of failing the plan.
var ErrUnrecognized = errors.New("file not recognized as a movie")

// Strategy derives a destination path (relative to the destination root)
// for a discovered media file.
type Strategy interface {
	// Name returns the strategy identifier
	Name() string

	// Derive returns the destination path relative to the destination
	// root, or ErrUnrecognized when the file cannot be named.
	Derive(ctx context.Context, file models.MediaFile) (string, error)
}

// ForKind returns the strategy for a configured kind. The provider is only
// consulted for the lookup strategy and may be nil otherwise.
func ForKind(kind models.NamingStrategyKind, provider MetadataProvider) (Strategy, error) {
	switch kind {
	case models.StrategyPattern, "":
		return NewPatternStrategy(), nil
	case models.StrategyLookup:
		if provider == nil {
			return nil, errors.New("lookup strategy requires a metadata provider")
		}
		return NewLookupStrategy(provider), nil
	default:
		return nil, errors.New("unknown naming strategy: " + string(kind))
	}
}
