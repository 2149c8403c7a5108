package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anekos/rename-movies/pkg/executor"
	"github.com/anekos/rename-movies/pkg/output"
	"github.com/anekos/rename-movies/pkg/storage"
)

// UndoFlags holds undo command flags
type UndoFlags struct {
	Dest      string
	Output    string
	LogFile   string
	LogFormat string
	LogLevel  string
}

var undoFlags UndoFlags

// NewUndoCommand creates the undo command
func NewUndoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <dest>",
		Short: "Reverse the last applied rename batch",
		Long: `Move files back to their original paths using the journal written by the
last rename in the destination directory. The journal is removed once
every entry has been reversed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUndo,
	}

	cmd.Flags().StringVarP(&undoFlags.Dest, "dest", "d", "", "destination directory of the batch to undo (or first argument)")
	cmd.Flags().StringVarP(&undoFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().StringVar(&undoFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&undoFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&undoFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runUndo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) > 0 {
		undoFlags.Dest = args[0]
	}
	if undoFlags.Dest == "" {
		return fmt.Errorf("destination directory is required")
	}

	if _, err := os.Stat(undoFlags.Dest); err != nil {
		return fmt.Errorf("destination path does not exist: %s", undoFlags.Dest)
	}

	logger, err := createLogger(undoFlags.LogFile, undoFlags.LogFormat, undoFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	backend := storage.NewLocal()
	defer backend.Close()

	report, err := executor.New(backend, nil, nil, logger).Undo(ctx, undoFlags.Dest)
	if err != nil {
		return err
	}

	formatter, err := output.ForFormat(output.Format(undoFlags.Output))
	if err != nil {
		return err
	}
	formatter.Start(os.Stdout, report.Stats.Planned)
	formatter.Complete(report)

	os.Exit(report.Status.ExitCode())
	return nil
}
