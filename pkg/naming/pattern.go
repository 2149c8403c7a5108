package naming

import (
	"context"
	"fmt"
	"strings"

	"github.com/anekos/rename-movies/pkg/models"
)

// PatternStrategy derives canonical names from the tokens parsed out of the
// filename alone, with no external lookup:
//
//	<Title> (<Year>).<ext>    when a year was parsed
//	<Title>.<ext>             otherwise
type PatternStrategy struct{}

// NewPatternStrategy creates a pattern-based naming strategy
func NewPatternStrategy() *PatternStrategy {
	return &PatternStrategy{}
}

// Name returns the strategy identifier
func (s *PatternStrategy) Name() string {
	return string(models.StrategyPattern)
}

// Derive builds the canonical destination name from the parsed tokens.
func (s *PatternStrategy) Derive(ctx context.Context, file models.MediaFile) (string, error) {
	title := strings.TrimSpace(file.Tokens.Title)
	if title == "" {
		return "", ErrUnrecognized
	}

	return CanonicalName(title, file.Tokens.Year, file.Extension), nil
}

// CanonicalName assembles the canonical file name for a title, optional
// year and extension.
func CanonicalName(title, year, ext string) string {
	if year != "" {
		return fmt.Sprintf("%s (%s)%s", title, year, ext)
	}
	return title + ext
}
