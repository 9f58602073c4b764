package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/spacedump/spacedump/internal/model"
)

// MarkdownWriter outputs run summaries as GitHub-flavored Markdown,
// meant for pasting into documentation or pull requests after a
// migration export.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.ExportSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Export Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + summary.BaseURL + "`"},
			{"Export Folder", "`" + summary.ExportFolder + "`"},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", summary.Duration.Round(time.Millisecond).String()},
			{"Pages Exported", strconv.Itoa(summary.TotalPages())},
			{"Pages Failed", strconv.Itoa(summary.TotalFailed())},
		},
	})
	md.PlainText("")

	w.writeSpaces(md, summary)
	w.writeAlert(md, summary)

	return len(md.String()), md.Build()
}

// writeSpaces writes the per-space result table.
func (w *MarkdownWriter) writeSpaces(md *markdown.Markdown, summary *model.ExportSummary) {
	md.H2("Spaces")
	md.PlainText("")

	rows := make([][]string, len(summary.Spaces))
	for i, sp := range summary.Spaces {
		rows[i] = []string{
			displayName(sp),
			"`" + sp.SpaceID + "`",
			"`" + sp.Folder + "/`",
			strconv.Itoa(sp.PagesExported),
			strconv.Itoa(sp.PagesFailed),
			w.statusText(sp),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Space", "ID", "Folder", "Exported", "Failed", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusText summarizes one space's outcome for the table.
func (w *MarkdownWriter) statusText(sp model.SpaceSummary) string {
	switch {
	case sp.Skipped:
		return "⚠️ Skipped (duplicate folder)"
	case sp.Error != "":
		return "❌ " + sp.Error
	case sp.PagesFailed > 0:
		return "⚠️ Partial"
	default:
		return "✅ Complete"
	}
}

// writeAlert writes an alert matching the overall outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.ExportSummary) {
	failed := summary.TotalFailed()
	switch {
	case failed > 0:
		md.Warningf("%d page(s) could not be fetched; their subtrees are missing from the export.", failed)
	default:
		md.Tip("All pages exported successfully.")
	}
	md.PlainText("")
}
