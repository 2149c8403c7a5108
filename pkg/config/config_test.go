package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.Naming.Strategy != "pattern" {
		t.Errorf("Strategy = %s, want pattern", cfg.Naming.Strategy)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Format = %s, want human", cfg.Output.Format)
	}
	if len(cfg.Rename.Extensions) == 0 {
		t.Error("default extensions should not be empty")
	}
	if cfg.Naming.Lookup.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.Naming.Lookup.TimeoutSeconds)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(c *Config) {}, false},
		{"UnknownStrategy", func(c *Config) { c.Naming.Strategy = "oracle" }, true},
		{"LookupWithoutEndpoint", func(c *Config) { c.Naming.Strategy = "lookup" }, true},
		{"LookupWithEndpoint", func(c *Config) {
			c.Naming.Strategy = "lookup"
			c.Naming.Lookup.Endpoint = "https://metadata.example.com/v1"
		}, false},
		{"NegativeTimeout", func(c *Config) { c.Naming.Lookup.TimeoutSeconds = -1 }, true},
		{"NegativeRetries", func(c *Config) { c.Naming.Lookup.MaxRetries = -1 }, true},
		{"UnknownOutputFormat", func(c *Config) { c.Output.Format = "xml" }, true},
		{"UnknownLogFormat", func(c *Config) { c.Logging.Format = "csv" }, true},
		{"UnknownLogLevel", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"NegativeMaxSize", func(c *Config) { c.Logging.MaxSize = -1 }, true},
		{"OverwritePlusSkipIdentical", func(c *Config) {
			c.Rename.Overwrite = true
			c.Rename.SkipIdentical = true
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "rename-movies-config-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "nested", "config.yaml")
	cfg := Default()
	cfg.Rename.Recursive = true
	cfg.Rename.Exclude = []string{"*.sample.*", "extras/"}
	cfg.Logging.File = "/var/log/rename-movies.log"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if !loaded.Rename.Recursive {
		t.Error("Recursive should survive the round trip")
	}
	if len(loaded.Rename.Exclude) != 2 || loaded.Rename.Exclude[0] != "*.sample.*" {
		t.Errorf("Exclude = %v, want the saved patterns", loaded.Rename.Exclude)
	}
	if loaded.Logging.File != "/var/log/rename-movies.log" {
		t.Errorf("Logging.File = %s, want the saved path", loaded.Logging.File)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "rename-movies-config-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "config.yaml")
	partial := "rename:\n  recursive: true\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if !cfg.Rename.Recursive {
		t.Error("Recursive should be set from the file")
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Format = %s, unset keys should keep defaults", cfg.Output.Format)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
			t.Error("LoadFromFile() should fail for a missing file")
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "rename-movies-config-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(tempDir)

		path := filepath.Join(tempDir, "config.yaml")
		if err := os.WriteFile(path, []byte("rename: ["), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail for malformed YAML")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "rename-movies-config-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(tempDir)

		path := filepath.Join(tempDir, "config.yaml")
		if err := os.WriteFile(path, []byte("naming:\n  strategy: oracle\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should reject an invalid strategy")
		}
	})
}
