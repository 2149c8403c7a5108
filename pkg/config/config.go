// Package config defines the configuration file format and its defaults.
package config

import (
	"fmt"

	"github.com/anekos/rename-movies/pkg/models"
	"github.com/anekos/rename-movies/pkg/output"
	"github.com/anekos/rename-movies/pkg/scan"
)

// Config is the top-level configuration
type Config struct {
	// Rename holds default plan and execution behavior
	Rename RenameConfig `yaml:"rename"`

	// Naming selects and configures the naming strategy
	Naming NamingConfig `yaml:"naming"`

	// Output selects the output format
	Output OutputConfig `yaml:"output"`

	// Logging configures the optional log file
	Logging LoggingConfig `yaml:"logging"`
}

// RenameConfig holds default plan and execution flags
type RenameConfig struct {
	Recursive     bool     `yaml:"recursive"`
	Overwrite     bool     `yaml:"overwrite"`
	Disambiguate  bool     `yaml:"disambiguate"`
	Atomic        bool     `yaml:"atomic"`
	SkipIdentical bool     `yaml:"skip_identical"`
	Exclude       []string `yaml:"exclude"`
	Extensions    []string `yaml:"extensions"`
}

// NamingConfig selects the naming strategy
type NamingConfig struct {
	// Strategy is "pattern" or "lookup"
	Strategy string `yaml:"strategy"`

	// Lookup configures the metadata service used by the lookup strategy
	Lookup LookupConfig `yaml:"lookup"`
}

// LookupConfig holds metadata service settings
type LookupConfig struct {
	Endpoint       string `yaml:"endpoint"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

// OutputConfig selects how progress and reports are rendered
type OutputConfig struct {
	// Format is "human", "json" or "progress"
	Format string `yaml:"format"`
}

// LoggingConfig configures the optional log file
type LoggingConfig struct {
	// File is the log file path; empty disables file logging
	File string `yaml:"file"`

	// Format is "json" or "text"
	Format string `yaml:"format"`

	// Level is "debug", "info", "warn" or "error"
	Level string `yaml:"level"`

	// MaxSize is the rotation threshold in bytes; 0 disables rotation
	MaxSize int64 `yaml:"max_size"`

	// MaxBackups is the number of rotated files to keep
	MaxBackups int `yaml:"max_backups"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Rename: RenameConfig{
			Extensions: append([]string(nil), scan.DefaultExtensions...),
		},
		Naming: NamingConfig{
			Strategy: string(models.StrategyPattern),
			Lookup: LookupConfig{
				TimeoutSeconds: 10,
				MaxRetries:     3,
			},
		},
		Output: OutputConfig{
			Format: string(output.FormatHuman),
		},
		Logging: LoggingConfig{
			Format:     "text",
			Level:      "info",
			MaxBackups: 3,
		},
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Naming.Strategy {
	case string(models.StrategyPattern), string(models.StrategyLookup), "":
	default:
		return &models.ValidationError{
			Field:   "naming.strategy",
			Message: fmt.Sprintf("unknown strategy: %s", c.Naming.Strategy),
		}
	}

	if c.Naming.Strategy == string(models.StrategyLookup) && c.Naming.Lookup.Endpoint == "" {
		return &models.ValidationError{
			Field:   "naming.lookup.endpoint",
			Message: "endpoint is required for the lookup strategy",
		}
	}
	if c.Naming.Lookup.TimeoutSeconds < 0 {
		return &models.ValidationError{
			Field:   "naming.lookup.timeout_seconds",
			Message: "must not be negative",
		}
	}
	if c.Naming.Lookup.MaxRetries < 0 {
		return &models.ValidationError{
			Field:   "naming.lookup.max_retries",
			Message: "must not be negative",
		}
	}

	switch output.Format(c.Output.Format) {
	case output.FormatHuman, output.FormatJSON, output.FormatProgress, output.Format(""):
	default:
		return &models.ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("unknown format: %s", c.Output.Format),
		}
	}

	switch c.Logging.Format {
	case "json", "text", "":
	default:
		return &models.ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format: %s", c.Logging.Format),
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		return &models.ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level: %s", c.Logging.Level),
		}
	}
	if c.Logging.MaxSize < 0 {
		return &models.ValidationError{
			Field:   "logging.max_size",
			Message: "must not be negative",
		}
	}

	if c.Rename.Overwrite && c.Rename.SkipIdentical {
		return &models.ValidationError{
			Field:   "rename",
			Message: "overwrite and skip_identical are mutually exclusive",
		}
	}

	return nil
}
