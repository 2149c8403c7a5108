package compare

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/anekos/rename-movies/pkg/storage"
)

func writeFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "rename-movies-compare-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tempDir, name), content, 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	return tempDir
}

func TestHashComparator(t *testing.T) {
	tempDir := writeFiles(t, map[string][]byte{
		"a.mkv":         []byte("same content"),
		"b.mkv":         []byte("same content"),
		"different.mkv": []byte("other content"),
		"shorter.mkv":   []byte("short"),
	})

	backend := storage.NewLocal()
	comparator := NewHashComparator(0)
	ctx := context.Background()

	t.Run("IdenticalContent", func(t *testing.T) {
		same, err := comparator.Identical(ctx, backend,
			filepath.Join(tempDir, "a.mkv"), filepath.Join(tempDir, "b.mkv"))
		if err != nil {
			t.Fatalf("Identical() error = %v", err)
		}
		if !same {
			t.Error("Identical() = false for identical files")
		}
	})

	t.Run("SameSizeDifferentContent", func(t *testing.T) {
		same, err := comparator.Identical(ctx, backend,
			filepath.Join(tempDir, "a.mkv"), filepath.Join(tempDir, "different.mkv"))
		if err != nil {
			t.Fatalf("Identical() error = %v", err)
		}
		if same {
			t.Error("Identical() = true for files with different content")
		}
	})

	t.Run("SizeMismatchShortCircuits", func(t *testing.T) {
		same, err := comparator.Identical(ctx, backend,
			filepath.Join(tempDir, "a.mkv"), filepath.Join(tempDir, "shorter.mkv"))
		if err != nil {
			t.Fatalf("Identical() error = %v", err)
		}
		if same {
			t.Error("Identical() = true for files with different sizes")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := comparator.Identical(ctx, backend,
			filepath.Join(tempDir, "a.mkv"), filepath.Join(tempDir, "missing.mkv"))
		if err == nil {
			t.Error("Identical() should fail for a missing file")
		}
	})
}

func TestSizeComparator(t *testing.T) {
	tempDir := writeFiles(t, map[string][]byte{
		"a.mkv": []byte("12345"),
		"b.mkv": []byte("abcde"),
		"c.mkv": []byte("ab"),
	})

	backend := storage.NewLocal()
	comparator := NewSizeComparator()
	ctx := context.Background()

	same, err := comparator.Identical(ctx, backend,
		filepath.Join(tempDir, "a.mkv"), filepath.Join(tempDir, "b.mkv"))
	if err != nil {
		t.Fatalf("Identical() error = %v", err)
	}
	if !same {
		t.Error("size comparator should match equal sizes")
	}

	same, err = comparator.Identical(ctx, backend,
		filepath.Join(tempDir, "a.mkv"), filepath.Join(tempDir, "c.mkv"))
	if err != nil {
		t.Fatalf("Identical() error = %v", err)
	}
	if same {
		t.Error("size comparator should reject different sizes")
	}
}
