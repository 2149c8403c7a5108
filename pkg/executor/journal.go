package executor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anekos/rename-movies/pkg/models"
)

// JournalFileName is written into the destination root after a successful
// apply so the batch can be undone later.
const JournalFileName = ".rename-movies.journal.json"

// Journal records the applied operations of one batch.
type Journal struct {
	PlanID    string         `json:"plan_id"`
	SourceDir string         `json:"source_dir"`
	DestDir   string         `json:"dest_dir"`
	AppliedAt time.Time      `json:"applied_at"`
	Entries   []JournalEntry `json:"entries"`
}

// JournalEntry is one applied move.
type JournalEntry struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// JournalPath returns the journal location for a destination directory.
func JournalPath(destDir string) string {
	return filepath.Join(destDir, JournalFileName)
}

// WriteJournal persists the applied operations of a plan under destDir,
// replacing any previous journal.
func WriteJournal(destDir string, plan *models.RenamePlan, applied []*models.RenameOperation) error {
	journal := Journal{
		PlanID:    plan.ID,
		SourceDir: plan.SourceDir,
		DestDir:   plan.DestDir,
		AppliedAt: time.Now(),
		Entries:   make([]JournalEntry, 0, len(applied)),
	}
	for _, op := range applied {
		journal.Entries = append(journal.Entries, JournalEntry{
			Source:      op.Source,
			Destination: op.Destination,
		})
	}

	data, err := json.MarshalIndent(journal, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	if err := os.WriteFile(JournalPath(destDir), data, 0644); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// LoadJournal reads the journal stored under destDir.
func LoadJournal(destDir string) (*Journal, error) {
	data, err := os.ReadFile(JournalPath(destDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no journal found in %s", destDir)
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	var journal Journal
	if err := json.Unmarshal(data, &journal); err != nil {
		return nil, fmt.Errorf("failed to parse journal: %w", err)
	}
	return &journal, nil
}

// RemoveJournal deletes the journal under destDir, if present.
func RemoveJournal(destDir string) error {
	err := os.Remove(JournalPath(destDir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove journal: %w", err)
	}
	return nil
}
