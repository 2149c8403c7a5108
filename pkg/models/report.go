package models

import (
	"time"
)

// ExecutionReport represents the results of applying a rename plan
type ExecutionReport struct {
	// Plan details
	PlanID    string `json:"plan_id"`
	SourceDir string `json:"source_dir"`
	DestDir   string `json:"dest_dir"`
	DryRun    bool   `json:"dry_run"`

	// Timing
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// Statistics
	Stats Statistics `json:"stats"`

	// Failures encountered, one entry per failed operation
	Failures []OperationFailure `json:"failures,omitempty"`

	// Overall status
	Status ExecutionStatus `json:"status"`
}

// Statistics holds rename batch metrics
type Statistics struct {
	// Planned is the total number of operations in the plan
	Planned int `json:"planned"`

	// Applied counts successfully completed moves
	Applied int `json:"applied"`

	// Failed counts operations that errored
	Failed int `json:"failed"`

	// Skipped counts operations skipped per policy (cancellation,
	// identical destination, atomic abort)
	Skipped int `json:"skipped"`

	// RolledBack counts applied moves that were undone
	RolledBack int `json:"rolled_back"`
}

// OperationFailure records why one operation failed
type OperationFailure struct {
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
}

// ExecutionStatus represents the overall result
type ExecutionStatus string

const (
	// ExecSuccess indicates all operations completed successfully
	ExecSuccess ExecutionStatus = "success"
	// ExecPartial indicates some operations failed
	ExecPartial ExecutionStatus = "partial"
	// ExecFailed indicates the batch failed (atomic abort or total failure)
	ExecFailed ExecutionStatus = "failed"
	// ExecCancelled indicates the batch was cancelled mid-way
	ExecCancelled ExecutionStatus = "cancelled"
)

// ExitCode returns the process exit code for the execution status
func (s ExecutionStatus) ExitCode() int {
	switch s {
	case ExecSuccess:
		return 0
	case ExecPartial:
		return 1
	case ExecFailed:
		return 2
	case ExecCancelled:
		return 3
	default:
		return 2
	}
}
