package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anekos/rename-movies/internal/platform"
	"github.com/anekos/rename-movies/pkg/config"
	"github.com/anekos/rename-movies/pkg/logging"
	"github.com/anekos/rename-movies/pkg/models"
	"github.com/anekos/rename-movies/pkg/naming"
	"github.com/anekos/rename-movies/pkg/output"
)

// validateRenameFlags validates the rename command flags
func validateRenameFlags() error {
	if err := platform.ValidatePath(renameFlags.Source); err != nil {
		return err
	}

	// Validate source exists
	if _, err := os.Stat(renameFlags.Source); os.IsNotExist(err) {
		return fmt.Errorf("source path does not exist: %s", renameFlags.Source)
	}

	// An empty destination means renaming in place
	if renameFlags.Dest == "" {
		return nil
	}
	if err := platform.ValidatePath(renameFlags.Dest); err != nil {
		return err
	}

	destInfo, err := os.Stat(renameFlags.Dest)
	if os.IsNotExist(err) {
		if renameFlags.CreateDest {
			if err := os.MkdirAll(renameFlags.Dest, 0755); err != nil {
				return fmt.Errorf("failed to create destination directory: %w", err)
			}
		} else {
			return fmt.Errorf("destination path does not exist: %s (use --create-dest to create it)", renameFlags.Dest)
		}
	} else if err != nil {
		return fmt.Errorf("failed to access destination path: %w", err)
	} else if !destInfo.IsDir() {
		return fmt.Errorf("destination path exists but is not a directory: %s", renameFlags.Dest)
	}

	// The same directory is fine (in-place rename) but strict nesting is not.
	sourceAbs, err := filepath.Abs(renameFlags.Source)
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}
	destAbs, err := filepath.Abs(renameFlags.Dest)
	if err != nil {
		return fmt.Errorf("failed to resolve destination path: %w", err)
	}
	if sourceAbs != destAbs {
		if strings.HasPrefix(destAbs, sourceAbs+string(filepath.Separator)) {
			return fmt.Errorf("destination cannot be inside source directory")
		}
		if strings.HasPrefix(sourceAbs, destAbs+string(filepath.Separator)) {
			return fmt.Errorf("source cannot be inside destination directory")
		}
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if renameFlags.Strategy != "" {
		cfg.Naming.Strategy = renameFlags.Strategy
	}
	if len(renameFlags.Exclude) > 0 {
		cfg.Rename.Exclude = renameFlags.Exclude
	}
	if renameFlags.Output != "" {
		cfg.Output.Format = renameFlags.Output
	}
}

// buildStrategy creates the naming strategy selected by the configuration
func buildStrategy(cfg *config.Config) (naming.Strategy, error) {
	kind := models.NamingStrategyKind(cfg.Naming.Strategy)

	var provider naming.MetadataProvider
	if kind == models.StrategyLookup {
		provider = naming.NewHTTPProvider(naming.HTTPProviderConfig{
			Endpoint:   cfg.Naming.Lookup.Endpoint,
			APIKey:     cfg.Naming.Lookup.APIKey,
			Timeout:    time.Duration(cfg.Naming.Lookup.TimeoutSeconds) * time.Second,
			MaxRetries: cfg.Naming.Lookup.MaxRetries,
		})
	}

	return naming.ForKind(kind, provider)
}

// buildFormatter creates the output formatter selected by the configuration
func buildFormatter(cfg *config.Config) (output.Formatter, error) {
	return output.ForFormat(output.Format(cfg.Output.Format))
}

// createLogger creates a logger based on configuration. Verbose runs
// without a log file get a styled console logger on stderr.
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	if logFile == "" {
		if globalFlags.Verbose {
			return logging.NewConsoleLogger(os.Stderr, logging.DebugLevel), nil
		}
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	cfg := logging.FileLoggerConfig{
		Path:       logFile,
		Format:     format,
		Level:      logging.ParseLevel(logLevel),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(cfg)
}
