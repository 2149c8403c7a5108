package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anekos/rename-movies/pkg/output"
	"github.com/anekos/rename-movies/pkg/planner"
	"github.com/anekos/rename-movies/pkg/storage"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <source>",
		Short: "Preview the rename plan without applying it",
		Long: `Compute and print the rename plan for a source directory. Nothing is
moved; the same plan is what rename would apply.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlan,
	}

	cmd.Flags().StringVarP(&renameFlags.Source, "source", "s", "", "source directory path (or first argument)")
	cmd.Flags().StringVarP(&renameFlags.Dest, "dest", "d", "", "destination directory path (default: rename in place)")
	cmd.Flags().StringVar(&renameFlags.Strategy, "strategy", "", "naming strategy: pattern, lookup")
	cmd.Flags().BoolVarP(&renameFlags.Recursive, "recursive", "r", false, "scan subdirectories of source")
	cmd.Flags().BoolVar(&renameFlags.Disambiguate, "disambiguate", false, "resolve name collisions with numeric suffixes")
	cmd.Flags().StringSliceVar(&renameFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&renameFlags.Output, "output", "o", "", "output format: human, json")

	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	if err := statSource(); err != nil {
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

	return output.WritePlanPreview(os.Stdout, plan, output.Format(cfg.Output.Format))
}

// statSource checks the plan command's source argument. The plan command
// never creates directories, so destination checks stay with the planner.
func statSource() error {
	if _, err := os.Stat(renameFlags.Source); os.IsNotExist(err) {
		return fmt.Errorf("source path does not exist: %s", renameFlags.Source)
	}
	return nil
}
