package models

import (
	"fmt"
	"sort"
	"time"
)

// SkippedFile records a scanned file the planner could not name.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RenamePlan is an ordered, collision-free set of proposed renames.
// Invariant: all destination paths within a plan are unique.
type RenamePlan struct {
	// ID uniquely identifies the plan (and its journal entry)
	ID string `json:"id"`

	// SourceDir and DestDir are the resolved absolute roots
	SourceDir string `json:"source_dir"`
	DestDir   string `json:"dest_dir"`

	// Operations in stable order (sorted by destination path)
	Operations []*RenameOperation `json:"operations"`

	// Skipped lists files that were enumerated but not planned
	Skipped []SkippedFile `json:"skipped,omitempty"`

	// CreatedAt is when the plan was computed
	CreatedAt time.Time `json:"created_at"`

	destinations map[string]struct{}
}

// NewRenamePlan creates an empty plan for the given roots.
func NewRenamePlan(id, sourceDir, destDir string) *RenamePlan {
	return &RenamePlan{
		ID:           id,
		SourceDir:    sourceDir,
		DestDir:      destDir,
		CreatedAt:    time.Now(),
		destinations: make(map[string]struct{}),
	}
}

// Add appends an operation to the plan. It rejects destinations already
// claimed by another operation, preserving the uniqueness invariant.
func (p *RenamePlan) Add(op *RenameOperation) error {
	if _, taken := p.destinations[op.Destination]; taken {
		return fmt.Errorf("destination already planned: %s", op.Destination)
	}
	p.destinations[op.Destination] = struct{}{}
	p.Operations = append(p.Operations, op)
	return nil
}

// HasDestination reports whether a destination path is already claimed.
func (p *RenamePlan) HasDestination(path string) bool {
	_, taken := p.destinations[path]
	return taken
}

// AddSkipped records a file that was enumerated but not planned.
func (p *RenamePlan) AddSkipped(path, reason string) {
	p.Skipped = append(p.Skipped, SkippedFile{Path: path, Reason: reason})
}

// Sort orders operations by destination path so that repeated planning on
// unchanged input is deterministic.
func (p *RenamePlan) Sort() {
	sort.Slice(p.Operations, func(i, j int) bool {
		return p.Operations[i].Destination < p.Operations[j].Destination
	})
	sort.Slice(p.Skipped, func(i, j int) bool {
		return p.Skipped[i].Path < p.Skipped[j].Path
	})
}

// Len returns the number of planned operations.
func (p *RenamePlan) Len() int {
	return len(p.Operations)
}
