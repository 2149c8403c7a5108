package planner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/anekos/rename-movies/pkg/models"
	"github.com/anekos/rename-movies/pkg/naming"
	"github.com/anekos/rename-movies/pkg/storage"
)

// fixedStrategy maps every file to the same destination name, which makes
// collision scenarios easy to stage.
type fixedStrategy struct {
	dest string
}

func (s *fixedStrategy) Name() string { return "fixed" }

func (s *fixedStrategy) Derive(ctx context.Context, file models.MediaFile) (string, error) {
	return s.dest, nil
}

func setupDirs(t *testing.T, sourceFiles []string) (string, string) {
	t.Helper()

	sourceDir, err := os.MkdirTemp("", "rename-movies-planner-src-*")
	if err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(sourceDir) })

	destDir, err := os.MkdirTemp("", "rename-movies-planner-dst-*")
	if err != nil {
		t.Fatalf("failed to create dest dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(destDir) })

	for _, name := range sourceFiles {
		if err := os.WriteFile(filepath.Join(sourceDir, name), []byte(name), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	return sourceDir, destDir
}

func TestPlanInvalidInput(t *testing.T) {
	backend := storage.NewLocal()
	p := New(backend, naming.NewPatternStrategy(), nil)
	ctx := context.Background()

	t.Run("MissingSource", func(t *testing.T) {
		_, destDir := setupDirs(t, nil)
		_, err := p.Plan(ctx, models.RenameOptions{
			SourceDir: "/nonexistent/source/dir",
			DestDir:   destDir,
		})
		var invalid *models.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("Plan() error = %v, want InvalidInputError", err)
		}
	})

	t.Run("SourceIsFile", func(t *testing.T) {
		sourceDir, destDir := setupDirs(t, []string{"movie.mkv"})
		_, err := p.Plan(ctx, models.RenameOptions{
			SourceDir: filepath.Join(sourceDir, "movie.mkv"),
			DestDir:   destDir,
		})
		var invalid *models.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("Plan() error = %v, want InvalidInputError", err)
		}
	})

	t.Run("EmptyOptions", func(t *testing.T) {
		_, err := p.Plan(ctx, models.RenameOptions{})
		if err == nil {
			t.Error("Plan() should fail with empty options")
		}
	})
}

func TestPlanDeterminism(t *testing.T) {
	sourceDir, destDir := setupDirs(t, []string{
		"The.Matrix.1999.1080p.mkv",
		"Inception.2010.720p.mkv",
		"Heat.1995.mkv",
	})

	backend := storage.NewLocal()
	p := New(backend, naming.NewPatternStrategy(), nil)
	ctx := context.Background()
	opts := models.RenameOptions{SourceDir: sourceDir, DestDir: destDir}

	first, err := p.Plan(ctx, opts)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	second, err := p.Plan(ctx, opts)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if first.Len() != 3 || second.Len() != 3 {
		t.Fatalf("plans have %d and %d operations, want 3 each", first.Len(), second.Len())
	}

	for i := range first.Operations {
		a, b := first.Operations[i], second.Operations[i]
		if a.Source != b.Source || a.Destination != b.Destination {
			t.Errorf("plan mismatch at %d: (%s -> %s) vs (%s -> %s)",
				i, a.Source, a.Destination, b.Source, b.Destination)
		}
	}

	// Sorted by destination path
	for i := 1; i < first.Len(); i++ {
		if first.Operations[i-1].Destination > first.Operations[i].Destination {
			t.Error("operations should be sorted by destination path")
		}
	}
}

func TestPlanDoesNotMutateFilesystem(t *testing.T) {
	sourceFiles := []string{"The.Matrix.1999.mkv", "Heat.1995.mkv"}
	sourceDir, destDir := setupDirs(t, sourceFiles)

	backend := storage.NewLocal()
	p := New(backend, naming.NewPatternStrategy(), nil)

	if _, err := p.Plan(context.Background(), models.RenameOptions{
		SourceDir: sourceDir,
		DestDir:   destDir,
	}); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	for _, name := range sourceFiles {
		if _, err := os.Stat(filepath.Join(sourceDir, name)); err != nil {
			t.Errorf("source file %s was touched by planning: %v", name, err)
		}
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatalf("failed to read dest dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("dest dir has %d entries after planning, want 0", len(entries))
	}
}

func TestPlanCollision(t *testing.T) {
	sourceDir, destDir := setupDirs(t, []string{"movie.a.mkv", "movie.b.mkv"})

	backend := storage.NewLocal()
	strategy := &fixedStrategy{dest: "Movie (2020).mkv"}
	p := New(backend, strategy, nil)
	ctx := context.Background()

	t.Run("WithoutDisambiguation", func(t *testing.T) {
		_, err := p.Plan(ctx, models.RenameOptions{
			SourceDir: sourceDir,
			DestDir:   destDir,
		})

		var collision *models.CollisionError
		if !errors.As(err, &collision) {
			t.Fatalf("Plan() error = %v, want CollisionError", err)
		}
		if len(collision.Sources) != 2 {
			t.Fatalf("CollisionError lists %d sources, want 2", len(collision.Sources))
		}
		wantSources := []string{
			filepath.Join(sourceDir, "movie.a.mkv"),
			filepath.Join(sourceDir, "movie.b.mkv"),
		}
		for i, want := range wantSources {
			if collision.Sources[i] != want {
				t.Errorf("Sources[%d] = %s, want %s", i, collision.Sources[i], want)
			}
		}
	})

	t.Run("WithDisambiguation", func(t *testing.T) {
		plan, err := p.Plan(ctx, models.RenameOptions{
			SourceDir:    sourceDir,
			DestDir:      destDir,
			Disambiguate: true,
		})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if plan.Len() != 2 {
			t.Fatalf("plan has %d operations, want 2", plan.Len())
		}

		// Suffixes assigned in source-path sort order
		bySource := make(map[string]string)
		for _, op := range plan.Operations {
			bySource[filepath.Base(op.Source)] = filepath.Base(op.Destination)
		}
		if bySource["movie.a.mkv"] != "Movie (2020) (1).mkv" {
			t.Errorf("movie.a.mkv -> %s, want Movie (2020) (1).mkv", bySource["movie.a.mkv"])
		}
		if bySource["movie.b.mkv"] != "Movie (2020) (2).mkv" {
			t.Errorf("movie.b.mkv -> %s, want Movie (2020) (2).mkv", bySource["movie.b.mkv"])
		}
	})
}

func TestPlanDisambiguationStepsOverExistingFiles(t *testing.T) {
	sourceDir, destDir := setupDirs(t, []string{"the.movie.2020.mkv"})

	// The plain canonical name is already taken in the destination.
	if err := os.WriteFile(filepath.Join(destDir, "The Movie (2020).mkv"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to seed dest dir: %v", err)
	}

	backend := storage.NewLocal()
	p := New(backend, naming.NewPatternStrategy(), nil)

	plan, err := p.Plan(context.Background(), models.RenameOptions{
		SourceDir:    sourceDir,
		DestDir:      destDir,
		Disambiguate: true,
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if plan.Len() != 1 {
		t.Fatalf("plan has %d operations, want 1", plan.Len())
	}
	if got := filepath.Base(plan.Operations[0].Destination); got != "The Movie (2020) (1).mkv" {
		t.Errorf("destination = %s, want The Movie (2020) (1).mkv", got)
	}
}

func TestPlanSkipsUnrecognizedAndAlreadyNamed(t *testing.T) {
	sourceDir, destDir := setupDirs(t, nil)

	// A file the pattern strategy cannot name.
	if err := os.WriteFile(filepath.Join(sourceDir, "1080p.mkv"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	// A recognizable file.
	if err := os.WriteFile(filepath.Join(sourceDir, "Heat.1995.mkv"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	backend := storage.NewLocal()
	p := New(backend, naming.NewPatternStrategy(), nil)
	ctx := context.Background()

	plan, err := p.Plan(ctx, models.RenameOptions{SourceDir: sourceDir, DestDir: destDir})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if plan.Len() != 1 {
		t.Errorf("plan has %d operations, want 1", plan.Len())
	}
	if len(plan.Skipped) != 1 {
		t.Fatalf("plan has %d skipped files, want 1", len(plan.Skipped))
	}
	if filepath.Base(plan.Skipped[0].Path) != "1080p.mkv" {
		t.Errorf("skipped = %s, want 1080p.mkv", plan.Skipped[0].Path)
	}

	t.Run("InPlaceAlreadyNamed", func(t *testing.T) {
		inPlace, err := os.MkdirTemp("", "rename-movies-planner-inplace-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		t.Cleanup(func() { os.RemoveAll(inPlace) })

		if err := os.WriteFile(filepath.Join(inPlace, "Heat (1995).mkv"), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		plan, err := p.Plan(ctx, models.RenameOptions{SourceDir: inPlace, DestDir: inPlace})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if plan.Len() != 0 {
			t.Errorf("plan has %d operations, want 0 for an already canonical file", plan.Len())
		}
		if len(plan.Skipped) != 1 || plan.Skipped[0].Reason != "already canonically named" {
			t.Errorf("Skipped = %+v, want one already-canonical entry", plan.Skipped)
		}
	})
}
