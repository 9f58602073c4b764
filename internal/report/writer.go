package report

import (
	"io"

	"github.com/spacedump/spacedump/internal/model"
)

// Writer outputs an export run summary in some format.
// Implementations exist for plain text, Markdown, and JSON.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.ExportSummary) (int, error)
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
