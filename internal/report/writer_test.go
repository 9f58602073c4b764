package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spacedump/spacedump/internal/model"
)

// testSummary returns a representative run summary.
func testSummary() *model.ExportSummary {
	return &model.ExportSummary{
		BaseURL:      "https://wiki.example.com",
		ExportFolder: "export",
		StartedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
		Spaces: []model.SpaceSummary{
			{
				SpaceID:       "DOCS",
				SpaceName:     "Documentation",
				Folder:        "DOCS",
				PagesExported: 12,
				PagesFailed:   1,
			},
			{
				SpaceID: "DUP",
				Folder:  "DUP",
				Skipped: true,
			},
			{
				SpaceID: "GONE",
				Folder:  "GONE",
				Error:   "wiki API request failed: 404",
			},
		},
	}
}

// TestTextWriter tests the plain text report.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	n, err := NewTextWriter(&buf).Write(testSummary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
	}

	out := buf.String()
	for _, want := range []string{
		"Export Summary",
		"https://wiki.example.com",
		"Spaces:        3",
		"12 exported, 1 failed",
		"Documentation (DOCS) -> DOCS/",
		"skipped: folder already exists",
		"error: wiki API request failed: 404",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}

	// Spaces without a fetched name fall back to the id.
	if !strings.Contains(out, "DUP (DUP)") {
		t.Errorf("expected id fallback for unnamed space, got:\n%s", out)
	}
}

// TestMarkdownWriter tests the Markdown report.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders tables and alert", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		n, err := NewMarkdownWriter(&buf).Write(testSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Error("expected non-zero byte count")
		}

		out := buf.String()
		for _, want := range []string{
			"# Export Report",
			"## Spaces",
			"| Property |",
			"| Space |",
			"`https://wiki.example.com`",
			"Documentation",
			"Skipped (duplicate folder)",
			"❌ wiki API request failed: 404",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}

		// One failed page produces a warning alert.
		if !strings.Contains(out, "WARNING") {
			t.Errorf("expected warning alert, got:\n%s", out)
		}
	})

	t.Run("clean run gets tip alert", func(t *testing.T) {
		t.Parallel()

		summary := testSummary()
		for i := range summary.Spaces {
			summary.Spaces[i].PagesFailed = 0
			summary.Spaces[i].Skipped = false
			summary.Spaces[i].Error = ""
		}

		var buf strings.Builder
		if _, err := NewMarkdownWriter(&buf).Write(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "TIP") {
			t.Errorf("expected tip alert, got:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "✅ Complete") {
			t.Errorf("expected complete status, got:\n%s", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON report.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		n, err := NewJSONWriter(&buf).Write(testSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		var decoded model.ExportSummary
		if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
			t.Fatalf("expected valid JSON: %v", err)
		}
		if decoded.BaseURL != "https://wiki.example.com" {
			t.Errorf("unexpected base URL %q", decoded.BaseURL)
		}
		if len(decoded.Spaces) != 3 {
			t.Errorf("expected 3 spaces, got %d", len(decoded.Spaces))
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected trailing newline")
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(testSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"base_url\"") {
			t.Errorf("expected indented output, got:\n%s", buf.String())
		}
	})

	t.Run("skipped and error fields omitted when empty", func(t *testing.T) {
		t.Parallel()

		summary := testSummary()
		var buf strings.Builder
		if _, err := NewJSONWriter(&buf).Write(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Only one space is skipped, so the key appears exactly once.
		if strings.Count(buf.String(), `"skipped"`) != 1 {
			t.Errorf("expected skipped key once, got:\n%s", buf.String())
		}
	})
}
