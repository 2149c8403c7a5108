package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/anekos/rename-movies/pkg/models"
)

type previewOperation struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type previewSkipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type planPreview struct {
	PlanID     string             `json:"plan_id"`
	SourceDir  string             `json:"source_dir"`
	DestDir    string             `json:"dest_dir"`
	Operations []previewOperation `json:"operations"`
	Skipped    []previewSkipped   `json:"skipped,omitempty"`
}

// WritePlanPreview renders a computed plan without executing it.
func WritePlanPreview(w io.Writer, plan *models.RenamePlan, format Format) error {
	switch format {
	case FormatJSON:
		preview := planPreview{
			PlanID:     plan.ID,
			SourceDir:  plan.SourceDir,
			DestDir:    plan.DestDir,
			Operations: make([]previewOperation, 0, plan.Len()),
		}
		for _, op := range plan.Operations {
			preview.Operations = append(preview.Operations, previewOperation{
				Source:      op.Source,
				Destination: op.Destination,
			})
		}
		for _, skipped := range plan.Skipped {
			preview.Skipped = append(preview.Skipped, previewSkipped{
				Path:   skipped.Path,
				Reason: skipped.Reason,
			})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(preview)

	case FormatHuman, FormatProgress, "":
		if plan.Len() == 0 {
			fmt.Fprintln(w, "Nothing to rename.")
		}
		for _, op := range plan.Operations {
			fmt.Fprintf(w, "%s\n  -> %s\n", op.Source, op.Destination)
		}
		if len(plan.Skipped) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Skipped:")
			for _, skipped := range plan.Skipped {
				fmt.Fprintf(w, "  %s (%s)\n", skipped.Path, skipped.Reason)
			}
		}
		fmt.Fprintf(w, "\n%d operation(s), %d skipped\n", plan.Len(), len(plan.Skipped))
		return nil

	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
