// Package output renders plans and execution reports for humans and
// machines.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/anekos/rename-movies/pkg/models"
)

// durationPrecision is the rounding applied to durations before display.
const durationPrecision = time.Millisecond

// Format identifies an output format
type Format string

const (
	// FormatHuman is line-oriented text for terminals
	FormatHuman Format = "human"
	// FormatJSON is newline-delimited JSON events plus a final report
	FormatJSON Format = "json"
	// FormatProgress is a terminal progress bar
	FormatProgress Format = "progress"
)

// EventType classifies a progress update
type EventType string

const (
	// EventOperationApplied reports a completed move
	EventOperationApplied EventType = "applied"
	// EventOperationSkipped reports a move skipped by policy
	EventOperationSkipped EventType = "skipped"
	// EventOperationFailed reports a failed move
	EventOperationFailed EventType = "failed"
)

// Update describes the outcome of one operation during execution.
type Update struct {
	Type        EventType
	Source      string
	Destination string
	Reason      string
	Current     int
	Total       int
	Err         error
}

// Formatter renders execution progress and the final report. Start is
// called once before the first operation, Progress once per operation and
// Complete once at the end.
type Formatter interface {
	Name() string
	Start(w io.Writer, total int)
	Progress(update Update)
	Complete(report *models.ExecutionReport)
}

// ForFormat returns the formatter for the given format name.
func ForFormat(format Format) (Formatter, error) {
	switch format {
	case FormatHuman, "":
		return NewHumanFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatProgress:
		return NewProgressFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
