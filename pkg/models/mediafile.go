package models

import (
	"time"
)

// MediaFile represents one discovered source file and its parsed identifying
// tokens. It is created during directory enumeration and immutable afterwards.
type MediaFile struct {
	// SourcePath is the absolute path of the file on disk
	SourcePath string

	// RelativePath is the path relative to the scan root
	RelativePath string

	// Extension is the file extension including the dot (e.g. ".mkv")
	Extension string

	// Size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// Tokens holds the identifying tokens parsed from the filename
	Tokens NameTokens
}

// NameTokens holds the structured result of filename parsing.
type NameTokens struct {
	// Title is the cleaned movie title
	Title string

	// Year is the release year, empty if none was parsed
	Year string

	// Residual holds trailing tokens that were not part of the title
	// (quality tags, source tags, release group)
	Residual []string
}

// HasYear reports whether a release year was parsed from the filename.
func (t NameTokens) HasYear() bool {
	return t.Year != ""
}
