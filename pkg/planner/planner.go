// Package planner computes rename plans. Planning never touches the
// filesystem beyond read-only enumeration and existence checks.
package planner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/anekos/rename-movies/pkg/logging"
	"github.com/anekos/rename-movies/pkg/models"
	"github.com/anekos/rename-movies/pkg/naming"
	"github.com/anekos/rename-movies/pkg/scan"
	"github.com/anekos/rename-movies/pkg/storage"
)

// Planner maps discovered media files to canonical destinations and
// produces an ordered, collision-free rename plan.
type Planner struct {
	backend  storage.Backend
	scanner  *scan.Scanner
	strategy naming.Strategy
	logger   logging.Logger
}

// New creates a planner using the given backend and naming strategy.
// A nil logger defaults to the null logger.
func New(backend storage.Backend, strategy naming.Strategy, logger logging.Logger) *Planner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Planner{
		backend:  backend,
		scanner:  scan.NewScanner(backend),
		strategy: strategy,
		logger:   logger,
	}
}

// Plan enumerates opts.SourceDir, derives a destination for each media file
// and returns the resulting plan. The plan is sorted by destination path, so
// planning twice over unchanged input yields identical plans.
func (p *Planner) Plan(ctx context.Context, opts models.RenameOptions) (*models.RenamePlan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sourceDir, err := p.checkDir(ctx, opts.SourceDir)
	if err != nil {
		return nil, err
	}
	destDir, err := filepath.Abs(opts.DestDir)
	if err != nil {
		return nil, &models.InvalidInputError{Path: opts.DestDir, Message: err.Error()}
	}

	opts.SourceDir = sourceDir
	files, err := p.scanner.Scan(ctx, opts)
	if err != nil {
		return nil, err
	}

	plan := models.NewRenamePlan(uuid.New().String(), sourceDir, destDir)
	p.logger.Debug(ctx, "scan complete", logging.Fields{
		"plan_id": plan.ID,
		"files":   len(files),
	})

	// Derive a destination for every file; group sources per destination
	// to detect collisions. Files iterate in source-path sort order.
	var candidates []candidate
	group := make(map[string][]string)

	for _, file := range files {
		relDest, err := p.strategy.Derive(ctx, file)
		if err != nil {
			if errors.Is(err, naming.ErrUnrecognized) {
				plan.AddSkipped(file.SourcePath, "unrecognized")
				p.logger.Warn(ctx, "skipping unrecognized file", logging.Fields{
					"path": file.SourcePath,
				})
				continue
			}
			return nil, fmt.Errorf("failed to derive name for %s: %w", file.SourcePath, err)
		}

		dest := filepath.Join(destDir, relDest)
		if dest == file.SourcePath {
			plan.AddSkipped(file.SourcePath, "already canonically named")
			continue
		}

		candidates = append(candidates, candidate{file: file, dest: dest})
		group[dest] = append(group[dest], file.SourcePath)
	}

	if !opts.Disambiguate {
		if err := firstCollision(candidates, group); err != nil {
			return nil, err
		}
	}

	// Non-colliding destinations claim their names first so that suffix
	// assignment never steals a name a plain operation needs.
	for _, c := range candidates {
		if len(group[c.dest]) > 1 {
			continue
		}
		dest := c.dest
		if opts.Disambiguate && !opts.Overwrite {
			dest, err = p.uniqueDestination(ctx, plan, c.dest, 0)
			if err != nil {
				return nil, err
			}
		}
		if err := p.addOperation(plan, c.file.SourcePath, dest); err != nil {
			return nil, err
		}
	}

	// Colliding groups receive " (N)" suffixes in source-path sort order.
	// Candidates already iterate in that order.
	counters := make(map[string]int)
	for _, c := range candidates {
		if len(group[c.dest]) <= 1 {
			continue
		}
		counters[c.dest]++
		dest, err := p.uniqueDestination(ctx, plan, c.dest, counters[c.dest])
		if err != nil {
			return nil, err
		}
		if err := p.addOperation(plan, c.file.SourcePath, dest); err != nil {
			return nil, err
		}
	}

	plan.Sort()
	p.logger.Info(ctx, "plan computed", logging.Fields{
		"plan_id":    plan.ID,
		"operations": plan.Len(),
		"skipped":    len(plan.Skipped),
	})

	return plan, nil
}

// checkDir resolves a directory argument and verifies it exists.
func (p *Planner) checkDir(ctx context.Context, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &models.InvalidInputError{Path: dir, Message: err.Error()}
	}
	info, err := p.backend.Stat(ctx, abs)
	if err != nil {
		return "", &models.InvalidInputError{Path: dir, Message: "directory does not exist"}
	}
	if !info.IsDir {
		return "", &models.InvalidInputError{Path: dir, Message: "not a directory"}
	}
	return abs, nil
}

// candidate pairs a scanned file with its derived destination before
// collision handling assigns final names.
type candidate struct {
	file models.MediaFile
	dest string
}

// firstCollision returns a CollisionError for the first destination claimed
// by more than one source, listing every colliding source.
func firstCollision(candidates []candidate, group map[string][]string) error {
	for _, c := range candidates {
		if sources := group[c.dest]; len(sources) > 1 {
			return &models.CollisionError{Destination: c.dest, Sources: sources}
		}
	}
	return nil
}

// uniqueDestination finds the first destination variant not claimed by the
// plan and not present on disk. index 0 tries the plain name first; a
// positive index starts at " (index)".
func (p *Planner) uniqueDestination(ctx context.Context, plan *models.RenamePlan, dest string, index int) (string, error) {
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for {
		candidate := dest
		if index > 0 {
			candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, index, ext))
		}

		if !plan.HasDestination(candidate) {
			exists, err := p.backend.Exists(ctx, candidate)
			if err != nil {
				return "", fmt.Errorf("failed to probe destination: %w", err)
			}
			if !exists {
				return candidate, nil
			}
		}
		index++
	}
}

// addOperation appends one move to the plan.
func (p *Planner) addOperation(plan *models.RenamePlan, source, dest string) error {
	op := &models.RenameOperation{
		ID:          uuid.New().String(),
		Source:      source,
		Destination: dest,
		Status:      models.StatusPlanned,
	}
	if err := plan.Add(op); err != nil {
		return fmt.Errorf("failed to add operation: %w", err)
	}
	return nil
}
