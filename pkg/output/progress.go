package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/anekos/rename-movies/pkg/models"
)

// ProgressFormatter renders a terminal progress bar while operations run
// and falls back to the human summary once execution finishes.
type ProgressFormatter struct {
	bar     *pb.ProgressBar
	summary *HumanFormatter
	w       io.Writer
}

// NewProgressFormatter creates a progress-bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{summary: NewHumanFormatter(), w: io.Discard}
}

// Start creates and starts the bar
func (f *ProgressFormatter) Start(w io.Writer, total int) {
	f.w = w
	f.bar = pb.New(total)
	f.bar.SetWriter(w)
	f.bar.SetTemplate(pb.Simple)
	f.bar.Start()
}

// Progress advances the bar by one operation
func (f *ProgressFormatter) Progress(update Update) {
	if f.bar != nil {
		f.bar.Increment()
	}
}

// Complete stops the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.ExecutionReport) {
	if f.bar != nil {
		f.bar.Finish()
	}
	f.summary.Start(f.w, report.Stats.Planned)
	f.summary.Complete(report)
}

// Name returns the format name
func (f *ProgressFormatter) Name() string {
	return string(FormatProgress)
}
