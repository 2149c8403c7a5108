package output

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/anekos/rename-movies/pkg/models"
)

// HumanFormatter prints one line per operation and a closing summary.
type HumanFormatter struct {
	w     io.Writer
	total int
}

// NewHumanFormatter creates a human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{w: io.Discard}
}

// Start records the writer and operation count
func (f *HumanFormatter) Start(w io.Writer, total int) {
	f.w = w
	f.total = total
}

// Progress prints the outcome of one operation
func (f *HumanFormatter) Progress(update Update) {
	prefix := fmt.Sprintf("[%d/%d]", update.Current, update.Total)
	switch update.Type {
	case EventOperationApplied:
		fmt.Fprintf(f.w, "%s %s -> %s\n", prefix, filepath.Base(update.Source), filepath.Base(update.Destination))
	case EventOperationSkipped:
		fmt.Fprintf(f.w, "%s skip %s (%s)\n", prefix, filepath.Base(update.Source), update.Reason)
	case EventOperationFailed:
		fmt.Fprintf(f.w, "%s FAIL %s: %v\n", prefix, filepath.Base(update.Source), update.Err)
	}
}

// Complete prints the summary block
func (f *HumanFormatter) Complete(report *models.ExecutionReport) {
	fmt.Fprintln(f.w)
	if report.DryRun {
		fmt.Fprintln(f.w, "Dry run, no files were moved.")
	}
	fmt.Fprintf(f.w, "Status:      %s\n", report.Status)
	fmt.Fprintf(f.w, "Planned:     %d\n", report.Stats.Planned)
	fmt.Fprintf(f.w, "Applied:     %d\n", report.Stats.Applied)
	fmt.Fprintf(f.w, "Skipped:     %d\n", report.Stats.Skipped)
	fmt.Fprintf(f.w, "Failed:      %d\n", report.Stats.Failed)
	if report.Stats.RolledBack > 0 {
		fmt.Fprintf(f.w, "Rolled back: %d\n", report.Stats.RolledBack)
	}
	fmt.Fprintf(f.w, "Duration:    %s\n", report.Duration.Round(durationPrecision))

	if len(report.Failures) > 0 {
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, "Failures:")
		for _, failure := range report.Failures {
			fmt.Fprintf(f.w, "  %s: %s\n", failure.Source, failure.Reason)
		}
	}
}

// Name returns the format name
func (f *HumanFormatter) Name() string {
	return string(FormatHuman)
}
