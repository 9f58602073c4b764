package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spacedump/spacedump/internal/model"
)

// TextWriter outputs human-readable run summaries for the terminal.
// Plain ASCII keeps the output pipeable and terminal-agnostic.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary in human-readable format.
func (w *TextWriter) Write(summary *model.ExportSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString("Export Summary\n")
	sb.WriteString("==============\n")
	fmt.Fprintf(&sb, "Source:        %s\n", summary.BaseURL)
	fmt.Fprintf(&sb, "Export folder: %s\n", summary.ExportFolder)
	fmt.Fprintf(&sb, "Duration:      %s\n", summary.Duration.Round(time.Millisecond))
	fmt.Fprintf(&sb, "Spaces:        %d\n", len(summary.Spaces))
	fmt.Fprintf(&sb, "Pages:         %d exported, %d failed\n\n", summary.TotalPages(), summary.TotalFailed())

	for _, sp := range summary.Spaces {
		fmt.Fprintf(&sb, "  %s (%s) -> %s/\n", displayName(sp), sp.SpaceID, sp.Folder)
		switch {
		case sp.Skipped:
			sb.WriteString("    skipped: folder already exists\n")
		case sp.Error != "":
			fmt.Fprintf(&sb, "    error: %s\n", sp.Error)
		default:
			fmt.Fprintf(&sb, "    %d page(s) exported, %d failed\n", sp.PagesExported, sp.PagesFailed)
		}
	}

	return io.WriteString(w.output, sb.String())
}

// displayName returns the space name, falling back to the id when the
// space detail was never fetched.
func displayName(sp model.SpaceSummary) string {
	if sp.SpaceName != "" {
		return sp.SpaceName
	}
	return sp.SpaceID
}
