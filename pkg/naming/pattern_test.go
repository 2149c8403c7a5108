package naming

import (
	"context"
	"errors"
	"testing"

	"github.com/anekos/rename-movies/pkg/models"
)

func TestPatternStrategyDerive(t *testing.T) {
	strategy := NewPatternStrategy()
	ctx := context.Background()

	t.Run("TitleAndYear", func(t *testing.T) {
		file := models.MediaFile{
			Extension: ".mkv",
			Tokens:    models.NameTokens{Title: "The Matrix", Year: "1999"},
		}
		got, err := strategy.Derive(ctx, file)
		if err != nil {
			t.Fatalf("Derive() error = %v", err)
		}
		if got != "The Matrix (1999).mkv" {
			t.Errorf("Derive() = %q, want %q", got, "The Matrix (1999).mkv")
		}
	})

	t.Run("TitleOnly", func(t *testing.T) {
		file := models.MediaFile{
			Extension: ".mp4",
			Tokens:    models.NameTokens{Title: "Home Video"},
		}
		got, err := strategy.Derive(ctx, file)
		if err != nil {
			t.Fatalf("Derive() error = %v", err)
		}
		if got != "Home Video.mp4" {
			t.Errorf("Derive() = %q, want %q", got, "Home Video.mp4")
		}
	})

	t.Run("Unrecognized", func(t *testing.T) {
		file := models.MediaFile{Extension: ".mkv"}
		_, err := strategy.Derive(ctx, file)
		if !errors.Is(err, ErrUnrecognized) {
			t.Errorf("Derive() error = %v, want ErrUnrecognized", err)
		}
	})
}

func TestForKind(t *testing.T) {
	t.Run("Pattern", func(t *testing.T) {
		s, err := ForKind(models.StrategyPattern, nil)
		if err != nil {
			t.Fatalf("ForKind() error = %v", err)
		}
		if s.Name() != "pattern" {
			t.Errorf("Name() = %s, want pattern", s.Name())
		}
	})

	t.Run("DefaultIsPattern", func(t *testing.T) {
		s, err := ForKind("", nil)
		if err != nil {
			t.Fatalf("ForKind() error = %v", err)
		}
		if s.Name() != "pattern" {
			t.Errorf("Name() = %s, want pattern", s.Name())
		}
	})

	t.Run("LookupWithoutProvider", func(t *testing.T) {
		if _, err := ForKind(models.StrategyLookup, nil); err == nil {
			t.Error("ForKind() should fail for lookup without a provider")
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, err := ForKind("oracle", nil); err == nil {
			t.Error("ForKind() should fail for an unknown kind")
		}
	})
}
