package executor

import (
	"context"
	"time"

	"github.com/anekos/rename-movies/pkg/logging"
	"github.com/anekos/rename-movies/pkg/models"
)

// Undo reverses the batch recorded in the journal under destDir, newest
// operation first. The journal is removed once every entry is reversed.
func (e *Executor) Undo(ctx context.Context, destDir string) (*models.ExecutionReport, error) {
	journal, err := LoadJournal(destDir)
	if err != nil {
		return nil, err
	}

	report := &models.ExecutionReport{
		PlanID:    journal.PlanID,
		SourceDir: journal.SourceDir,
		DestDir:   journal.DestDir,
		StartTime: time.Now(),
	}
	report.Stats.Planned = len(journal.Entries)

	logger := e.logger.WithFields(logging.Fields{"plan_id": journal.PlanID})
	logger.Info(ctx, "undoing batch", logging.Fields{"entries": len(journal.Entries)})

	for i := len(journal.Entries) - 1; i >= 0; i-- {
		entry := journal.Entries[i]

		select {
		case <-ctx.Done():
			report.Stats.Skipped++
			continue
		default:
		}

		if err := e.undoOne(ctx, entry); err != nil {
			report.Stats.Failed++
			report.Failures = append(report.Failures, models.OperationFailure{
				Source:      entry.Destination,
				Destination: entry.Source,
				Reason:      err.Error(),
				Timestamp:   time.Now(),
			})
			logger.Error(ctx, "undo failed", err, logging.Fields{
				"source":      entry.Destination,
				"destination": entry.Source,
			})
			continue
		}
		report.Stats.RolledBack++
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	switch {
	case report.Stats.Failed == 0 && report.Stats.Skipped == 0:
		report.Status = models.ExecSuccess
	case report.Stats.RolledBack > 0:
		report.Status = models.ExecPartial
	default:
		report.Status = models.ExecFailed
	}

	if report.Status == models.ExecSuccess {
		if err := RemoveJournal(destDir); err != nil {
			logger.Warn(ctx, "failed to remove journal", logging.Fields{"error": err.Error()})
		}
	}

	return report, nil
}

// undoOne moves one journal entry back to its original path.
func (e *Executor) undoOne(ctx context.Context, entry JournalEntry) error {
	exists, err := e.backend.Exists(ctx, entry.Destination)
	if err != nil {
		return &models.FilesystemError{Path: entry.Destination, Op: "stat", Err: err}
	}
	if !exists {
		return &models.PreconditionError{
			Source:      entry.Destination,
			Destination: entry.Source,
			Message:     "renamed file no longer exists",
		}
	}

	originalTaken, err := e.backend.Exists(ctx, entry.Source)
	if err != nil {
		return &models.FilesystemError{Path: entry.Source, Op: "stat", Err: err}
	}
	if originalTaken {
		return &models.PreconditionError{
			Source:      entry.Destination,
			Destination: entry.Source,
			Message:     "original path is occupied",
		}
	}

	if err := e.backend.Rename(ctx, entry.Destination, entry.Source); err != nil {
		return &models.FilesystemError{Path: entry.Source, Op: "rename", Err: err}
	}
	return nil
}
