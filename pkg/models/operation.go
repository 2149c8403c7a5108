package models

import (
	"time"
)

// OperationStatus tracks the lifecycle of a rename operation
type OperationStatus string

const (
	// StatusPlanned indicates the operation has not been applied yet
	StatusPlanned OperationStatus = "planned"
	// StatusApplied indicates the move completed successfully
	StatusApplied OperationStatus = "applied"
	// StatusFailed indicates the move failed
	StatusFailed OperationStatus = "failed"
	// StatusSkipped indicates the operation was skipped per policy
	StatusSkipped OperationStatus = "skipped"
	// StatusRolledBack indicates the move was undone after a batch failure
	StatusRolledBack OperationStatus = "rolled-back"
)

// NamingStrategyKind selects how destination names are derived
type NamingStrategyKind string

const (
	// StrategyPattern derives names from filename tokens only
	StrategyPattern NamingStrategyKind = "pattern"
	// StrategyLookup resolves names through an external metadata provider
	StrategyLookup NamingStrategyKind = "lookup"
)

// RenameOperation represents one planned source -> destination move.
// It is created by the planner; only the executor mutates its status.
type RenameOperation struct {
	// ID uniquely identifies the operation within a plan
	ID string `json:"id"`

	// Source is the absolute path of the file to move
	Source string `json:"source"`

	// Destination is the absolute path the file will be moved to
	Destination string `json:"destination"`

	// Status tracks the current state of the operation
	Status OperationStatus `json:"status"`

	// Reason explains a failed or skipped status
	Reason string `json:"reason,omitempty"`

	// AppliedAt is set when the move completes
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

// MarkApplied records a successful move.
func (op *RenameOperation) MarkApplied() {
	op.Status = StatusApplied
	now := time.Now()
	op.AppliedAt = &now
}

// MarkFailed records a failed move with its reason.
func (op *RenameOperation) MarkFailed(err error) {
	op.Status = StatusFailed
	if err != nil {
		op.Reason = err.Error()
	}
}

// MarkSkipped records a skipped operation with its reason.
func (op *RenameOperation) MarkSkipped(reason string) {
	op.Status = StatusSkipped
	op.Reason = reason
}

// MarkRolledBack records that an applied move was undone.
func (op *RenameOperation) MarkRolledBack() {
	op.Status = StatusRolledBack
	op.AppliedAt = nil
}

// RenameOptions is the configuration struct passed explicitly into the
// planner and executor. Global CLI state is resolved into it up front.
type RenameOptions struct {
	// SourceDir is the directory scanned for media files
	SourceDir string

	// DestDir is the directory renamed files are moved into
	DestDir string

	// Strategy selects the naming strategy
	Strategy NamingStrategyKind

	// Recursive enables scanning below the top level of SourceDir
	Recursive bool

	// Overwrite allows destinations that already exist on disk
	Overwrite bool

	// Disambiguate resolves destination collisions with numeric suffixes
	// instead of failing the plan
	Disambiguate bool

	// Atomic rolls back all applied operations when any operation fails
	Atomic bool

	// DryRun performs every check without mutating the filesystem
	DryRun bool

	// SkipIdentical skips operations whose destination already exists
	// with identical content instead of failing the precondition
	SkipIdentical bool

	// ExcludePatterns are glob patterns for files to ignore while scanning
	ExcludePatterns []string

	// Extensions is the set of media file extensions considered (with dot)
	Extensions []string
}

// Validate checks if the options are coherent
func (o *RenameOptions) Validate() error {
	if o.SourceDir == "" {
		return &ValidationError{Field: "SourceDir", Message: "source directory is required"}
	}
	if o.DestDir == "" {
		return &ValidationError{Field: "DestDir", Message: "destination directory is required"}
	}
	switch o.Strategy {
	case StrategyPattern, StrategyLookup, "":
	default:
		return &ValidationError{Field: "Strategy", Message: "unknown naming strategy: " + string(o.Strategy)}
	}
	if o.Overwrite && o.SkipIdentical {
		return &ValidationError{Field: "SkipIdentical", Message: "cannot combine overwrite with skip-identical"}
	}
	return nil
}
