package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/anekos/rename-movies/pkg/models"
)

// JSONFormatter emits one JSON event per operation followed by the full
// report, newline-delimited for stream consumers.
type JSONFormatter struct {
	encoder *json.Encoder
}

type jsonEvent struct {
	Event       EventType `json:"event"`
	Source      string    `json:"source"`
	Destination string    `json:"destination,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Error       string    `json:"error,omitempty"`
	Current     int       `json:"current"`
	Total       int       `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
}

type jsonReport struct {
	Event     string                    `json:"event"`
	PlanID    string                    `json:"plan_id"`
	SourceDir string                    `json:"source_dir"`
	DestDir   string                    `json:"dest_dir"`
	DryRun    bool                      `json:"dry_run"`
	Status    models.ExecutionStatus    `json:"status"`
	Stats     models.Statistics         `json:"stats"`
	Failures  []models.OperationFailure `json:"failures,omitempty"`
	Duration  string                    `json:"duration"`
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{encoder: json.NewEncoder(io.Discard)}
}

// Start binds the formatter to its writer
func (f *JSONFormatter) Start(w io.Writer, total int) {
	f.encoder = json.NewEncoder(w)
}

// Progress emits one operation event
func (f *JSONFormatter) Progress(update Update) {
	event := jsonEvent{
		Event:       update.Type,
		Source:      update.Source,
		Destination: update.Destination,
		Reason:      update.Reason,
		Current:     update.Current,
		Total:       update.Total,
		Timestamp:   time.Now(),
	}
	if update.Err != nil {
		event.Error = update.Err.Error()
	}
	f.encoder.Encode(event)
}

// Complete emits the final report event
func (f *JSONFormatter) Complete(report *models.ExecutionReport) {
	f.encoder.Encode(jsonReport{
		Event:     "report",
		PlanID:    report.PlanID,
		SourceDir: report.SourceDir,
		DestDir:   report.DestDir,
		DryRun:    report.DryRun,
		Status:    report.Status,
		Stats:     report.Stats,
		Failures:  report.Failures,
		Duration:  report.Duration.Round(durationPrecision).String(),
	})
}

// Name returns the format name
func (f *JSONFormatter) Name() string {
	return string(FormatJSON)
}
