package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anekos/rename-movies/pkg/compare"
	"github.com/anekos/rename-movies/pkg/config"
	"github.com/anekos/rename-movies/pkg/executor"
	"github.com/anekos/rename-movies/pkg/models"
	"github.com/anekos/rename-movies/pkg/planner"
	"github.com/anekos/rename-movies/pkg/storage"
)

// RenameFlags holds rename command flags
type RenameFlags struct {
	Source        string
	Dest          string
	Strategy      string
	Recursive     bool
	Overwrite     bool
	Disambiguate  bool
	Atomic        bool
	DryRun        bool
	CreateDest    bool
	SkipIdentical bool
	Exclude       []string
	Output        string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var renameFlags RenameFlags

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <source>",
		Short: "Rename movie files to canonical names",
		Long: `Rename movie files in a source directory to canonical "Title (Year)" names.
Renames happen in place unless a destination directory is given. The batch
can be previewed with --dry-run and reversed afterwards with undo.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRename,
	}

	cmd.Flags().StringVarP(&renameFlags.Source, "source", "s", "", "source directory path (or first argument)")

	// Optional flags
	cmd.Flags().StringVarP(&renameFlags.Dest, "dest", "d", "", "destination directory path (default: rename in place)")
	cmd.Flags().StringVar(&renameFlags.Strategy, "strategy", "", "naming strategy: pattern, lookup")
	cmd.Flags().BoolVarP(&renameFlags.Recursive, "recursive", "r", false, "scan subdirectories of source")
	cmd.Flags().BoolVar(&renameFlags.Overwrite, "overwrite", false, "replace existing files at destination paths")
	cmd.Flags().BoolVar(&renameFlags.Disambiguate, "disambiguate", false, "resolve name collisions with numeric suffixes")
	cmd.Flags().BoolVar(&renameFlags.Atomic, "atomic", false, "undo already applied renames if any operation fails")
	cmd.Flags().BoolVar(&renameFlags.DryRun, "dry-run", false, "check every operation but move nothing")
	cmd.Flags().BoolVar(&renameFlags.CreateDest, "create-dest", false, "create destination directory if it doesn't exist")
	cmd.Flags().BoolVar(&renameFlags.SkipIdentical, "skip-identical", false, "skip files whose destination already holds identical content")
	cmd.Flags().StringSliceVar(&renameFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&renameFlags.Output, "output", "o", "", "output format: human, json, progress")

	// Logging flags
	cmd.Flags().StringVar(&renameFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&renameFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&renameFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) > 0 {
		renameFlags.Source = args[0]
	}
	if renameFlags.Source == "" {
		return fmt.Errorf("source directory is required")
	}

	if err := validateRenameFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)

	opts := buildRenameOptions(cfg)
	if err := opts.Validate(); err != nil {
		return err
	}

	backend := storage.NewLocal()
	defer backend.Close()

	strategy, err := buildStrategy(cfg)
	if err != nil {
		return fmt.Errorf("failed to create naming strategy: %w", err)
	}

	logger, err := createLogger(renameFlags.LogFile, renameFlags.LogFormat, renameFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	plan, err := planner.New(backend, strategy, logger).Plan(ctx, opts)
	if err != nil {
		return err
	}

	formatter, err := buildFormatter(cfg)
	if err != nil {
		return err
	}

	var comparator compare.Comparator
	if opts.SkipIdentical {
		comparator = compare.NewHashComparator(0)
	}

	exec := executor.New(backend, comparator, formatter, logger)
	if globalFlags.Quiet {
		exec.Out = io.Discard
	}

	report, err := exec.Apply(ctx, plan, opts)
	if err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// buildRenameOptions merges config defaults and command-line flags into
// the options passed to the planner and executor.
func buildRenameOptions(cfg *config.Config) models.RenameOptions {
	dest := renameFlags.Dest
	if dest == "" {
		dest = renameFlags.Source
	}

	return models.RenameOptions{
		SourceDir:       renameFlags.Source,
		DestDir:         dest,
		Strategy:        models.NamingStrategyKind(cfg.Naming.Strategy),
		Recursive:       renameFlags.Recursive || cfg.Rename.Recursive,
		Overwrite:       renameFlags.Overwrite || cfg.Rename.Overwrite,
		Disambiguate:    renameFlags.Disambiguate || cfg.Rename.Disambiguate,
		Atomic:          renameFlags.Atomic || cfg.Rename.Atomic,
		DryRun:          renameFlags.DryRun,
		SkipIdentical:   renameFlags.SkipIdentical || cfg.Rename.SkipIdentical,
		ExcludePatterns: cfg.Rename.Exclude,
		Extensions:      cfg.Rename.Extensions,
	}
}
