// Package executor applies rename plans to the filesystem, one operation at
// a time, with per-operation isolation or atomic-batch rollback.
package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/anekos/rename-movies/pkg/compare"
	"github.com/anekos/rename-movies/pkg/logging"
	"github.com/anekos/rename-movies/pkg/models"
	"github.com/anekos/rename-movies/pkg/output"
	"github.com/anekos/rename-movies/pkg/storage"
)

// Executor applies a previously computed plan. It owns all status mutation
// of the plan's operations.
type Executor struct {
	backend    storage.Backend
	comparator compare.Comparator
	formatter  output.Formatter
	logger     logging.Logger

	// Out receives formatter output; defaults to os.Stdout
	Out io.Writer
}

// New creates an executor. comparator is consulted for the skip-identical
// policy and may be nil when that policy is off. formatter and logger may be
// nil; they default to no output and the null logger.
func New(backend storage.Backend, comparator compare.Comparator, formatter output.Formatter, logger logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Executor{
		backend:    backend,
		comparator: comparator,
		formatter:  formatter,
		logger:     logger,
	}
}

// Apply executes the plan in order and returns the execution report.
// Cancellation is honored between operations: the remainder is marked
// skipped and the report is cancelled.
func (e *Executor) Apply(ctx context.Context, plan *models.RenamePlan, opts models.RenameOptions) (*models.ExecutionReport, error) {
	report := &models.ExecutionReport{
		PlanID:    plan.ID,
		SourceDir: plan.SourceDir,
		DestDir:   plan.DestDir,
		DryRun:    opts.DryRun,
		StartTime: time.Now(),
	}
	report.Stats.Planned = plan.Len()

	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	if e.formatter != nil {
		e.formatter.Start(out, plan.Len())
	}

	logger := e.logger.WithFields(logging.Fields{"plan_id": plan.ID})
	logger.Info(ctx, "applying plan", logging.Fields{
		"operations": plan.Len(),
		"dry_run":    opts.DryRun,
		"atomic":     opts.Atomic,
	})

	var applied []*models.RenameOperation
	var createdDirs []string
	aborted := false
	cancelled := false

	for i, op := range plan.Operations {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled || aborted {
			reason := "atomic abort"
			if cancelled {
				reason = "cancelled"
			}
			op.MarkSkipped(reason)
			report.Stats.Skipped++
			continue
		}

		if err := e.applyOne(ctx, op, opts, &createdDirs); err != nil {
			op.MarkFailed(err)
			report.Stats.Failed++
			report.Failures = append(report.Failures, models.OperationFailure{
				Source:      op.Source,
				Destination: op.Destination,
				Reason:      err.Error(),
				Timestamp:   time.Now(),
			})
			logger.Error(ctx, "operation failed", err, logging.Fields{
				"source":      op.Source,
				"destination": op.Destination,
			})
			e.progress(output.Update{
				Type:        output.EventOperationFailed,
				Source:      op.Source,
				Destination: op.Destination,
				Current:     i + 1,
				Total:       plan.Len(),
				Err:         err,
			})

			if opts.Atomic {
				e.rollback(ctx, applied, createdDirs, report, logger)
				aborted = true
			}
			continue
		}

		if op.Status == models.StatusSkipped {
			report.Stats.Skipped++
			e.progress(output.Update{
				Type:        output.EventOperationSkipped,
				Source:      op.Source,
				Destination: op.Destination,
				Reason:      op.Reason,
				Current:     i + 1,
				Total:       plan.Len(),
			})
			continue
		}

		report.Stats.Applied++
		if !opts.DryRun {
			applied = append(applied, op)
		}
		e.progress(output.Update{
			Type:        output.EventOperationApplied,
			Source:      op.Source,
			Destination: op.Destination,
			Current:     i + 1,
			Total:       plan.Len(),
		})
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Status = resolveStatus(report, aborted, cancelled)

	if !opts.DryRun && len(applied) > 0 && !aborted {
		if err := WriteJournal(plan.DestDir, plan, applied); err != nil {
			logger.Warn(ctx, "failed to write undo journal", logging.Fields{"error": err.Error()})
		}
	}

	logger.Info(ctx, "plan applied", logging.Fields{
		"status":  string(report.Status),
		"applied": report.Stats.Applied,
		"failed":  report.Stats.Failed,
		"skipped": report.Stats.Skipped,
	})

	if e.formatter != nil {
		e.formatter.Complete(report)
	}

	return report, nil
}

// applyOne verifies the preconditions for a single operation and performs
// the move. A skip-identical hit marks the operation skipped and returns
// nil. Returned errors are PreconditionError or FilesystemError.
func (e *Executor) applyOne(ctx context.Context, op *models.RenameOperation, opts models.RenameOptions, createdDirs *[]string) error {
	exists, err := e.backend.Exists(ctx, op.Source)
	if err != nil {
		return &models.FilesystemError{Path: op.Source, Op: "stat", Err: err}
	}
	if !exists {
		return &models.PreconditionError{
			Source:      op.Source,
			Destination: op.Destination,
			Message:     "source no longer exists",
		}
	}

	destExists, err := e.backend.Exists(ctx, op.Destination)
	if err != nil {
		return &models.FilesystemError{Path: op.Destination, Op: "stat", Err: err}
	}
	if destExists && !opts.Overwrite {
		if opts.SkipIdentical && e.comparator != nil {
			same, err := e.comparator.Identical(ctx, e.backend, op.Source, op.Destination)
			if err != nil {
				return &models.FilesystemError{Path: op.Destination, Op: "compare", Err: err}
			}
			if same {
				op.MarkSkipped("destination already has identical content")
				return nil
			}
		}
		return &models.PreconditionError{
			Source:      op.Source,
			Destination: op.Destination,
			Message:     "destination already exists",
		}
	}

	if opts.DryRun {
		op.MarkApplied()
		return nil
	}

	parent := filepath.Dir(op.Destination)
	parentExists, err := e.backend.Exists(ctx, parent)
	if err != nil {
		return &models.FilesystemError{Path: parent, Op: "stat", Err: err}
	}
	if !parentExists {
		if err := e.backend.MkdirAll(ctx, parent); err != nil {
			return &models.FilesystemError{Path: parent, Op: "mkdir", Err: err}
		}
		*createdDirs = append(*createdDirs, parent)
	}

	if err := e.backend.Rename(ctx, op.Source, op.Destination); err != nil {
		return &models.FilesystemError{Path: op.Destination, Op: "rename", Err: err}
	}

	op.MarkApplied()
	return nil
}

// rollback undoes previously applied operations in reverse order, then
// removes any directories this batch created.
func (e *Executor) rollback(ctx context.Context, applied []*models.RenameOperation, createdDirs []string, report *models.ExecutionReport, logger logging.Logger) {
	for i := len(applied) - 1; i >= 0; i-- {
		op := applied[i]
		if err := e.backend.Rename(ctx, op.Destination, op.Source); err != nil {
			// The file stays at its destination; report it so the
			// user can recover manually.
			logger.Error(ctx, "rollback failed", err, logging.Fields{
				"source":      op.Source,
				"destination": op.Destination,
			})
			report.Failures = append(report.Failures, models.OperationFailure{
				Source:      op.Source,
				Destination: op.Destination,
				Reason:      fmt.Sprintf("rollback failed: %v", err),
				Timestamp:   time.Now(),
			})
			continue
		}
		op.MarkRolledBack()
		report.Stats.RolledBack++
		report.Stats.Applied--
	}

	for i := len(createdDirs) - 1; i >= 0; i-- {
		// Best effort; the directory may hold unrelated files by now.
		e.backend.Remove(ctx, createdDirs[i])
	}
}

// resolveStatus derives the overall report status from the counters.
func resolveStatus(report *models.ExecutionReport, aborted, cancelled bool) models.ExecutionStatus {
	switch {
	case cancelled:
		return models.ExecCancelled
	case aborted:
		return models.ExecFailed
	case report.Stats.Failed > 0 && report.Stats.Applied > 0:
		return models.ExecPartial
	case report.Stats.Failed > 0:
		return models.ExecFailed
	default:
		return models.ExecSuccess
	}
}

func (e *Executor) progress(update output.Update) {
	if e.formatter != nil {
		e.formatter.Progress(update)
	}
}
