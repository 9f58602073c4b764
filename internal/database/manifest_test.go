package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spacedump/spacedump/internal/model"
)

// openTestManifest opens a manifest in a temp directory.
func openTestManifest(t *testing.T) *Manifest {
	t.Helper()

	m, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open manifest: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Close(); err != nil {
			t.Errorf("failed to close manifest: %v", err)
		}
	})
	return m
}

// TestOpen tests manifest database creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates directory and database file", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "manifest")
		m, err := Open(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer m.Close()

		if _, err := os.Stat(m.Path()); err != nil {
			t.Errorf("expected database file at %s: %v", m.Path(), err)
		}
		if filepath.Dir(m.Path()) != dir {
			t.Errorf("expected database under %s, got %s", dir, m.Path())
		}
	})

	t.Run("reopening keeps existing data", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ctx := context.Background()

		m, err := Open(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		page := &model.Page{ID: "1", Title: "Home"}
		if err := m.RecordPage(ctx, "DOCS", page, "Home.html"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := m.Close(); err != nil {
			t.Fatalf("failed to close: %v", err)
		}

		m2, err := Open(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer m2.Close()

		records, err := m2.Pages(ctx, "DOCS")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0].Title != "Home" {
			t.Errorf("expected persisted record, got %+v", records)
		}
	})
}

// TestManifestRecordPage tests page row upserts.
func TestManifestRecordPage(t *testing.T) {
	t.Parallel()

	t.Run("records and retrieves pages", func(t *testing.T) {
		t.Parallel()

		m := openTestManifest(t)
		ctx := context.Background()

		pages := []struct {
			id, title, file string
		}{
			{"1", "Home", "Home.html"},
			{"2", "Guide", "Guide.html"},
		}
		for _, p := range pages {
			page := &model.Page{ID: p.id, Title: p.title}
			if err := m.RecordPage(ctx, "DOCS", page, p.file); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		records, err := m.Pages(ctx, "DOCS")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		for _, r := range records {
			if r.SpaceID != "DOCS" {
				t.Errorf("unexpected space id %q", r.SpaceID)
			}
			if r.ExportedAt.IsZero() {
				t.Errorf("expected non-zero export time for page %s", r.PageID)
			}
		}
	})

	t.Run("re-export overwrites row", func(t *testing.T) {
		t.Parallel()

		m := openTestManifest(t)
		ctx := context.Background()

		page := &model.Page{ID: "1", Title: "Old Title"}
		if err := m.RecordPage(ctx, "DOCS", page, "Old Title.html"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		page.Title = "New Title"
		if err := m.RecordPage(ctx, "DOCS", page, "New Title.html"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		records, err := m.Pages(ctx, "DOCS")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record after upsert, got %d", len(records))
		}
		if records[0].Title != "New Title" || records[0].FileName != "New Title.html" {
			t.Errorf("expected updated row, got %+v", records[0])
		}
	})

	t.Run("same page id in different spaces kept apart", func(t *testing.T) {
		t.Parallel()

		m := openTestManifest(t)
		ctx := context.Background()

		page := &model.Page{ID: "1", Title: "Home"}
		if err := m.RecordPage(ctx, "DOCS", page, "Home.html"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := m.RecordPage(ctx, "TEAM", page, "Home.html"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		docs, err := m.Pages(ctx, "DOCS")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		team, err := m.Pages(ctx, "TEAM")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 1 || len(team) != 1 {
			t.Errorf("expected one record per space, got %d and %d", len(docs), len(team))
		}
	})
}

// TestManifestRecordSpace tests space row upserts.
func TestManifestRecordSpace(t *testing.T) {
	t.Parallel()

	m := openTestManifest(t)
	ctx := context.Background()

	space := &model.Space{ID: "DOCS", Name: "Documentation", HomepageID: "1"}
	if err := m.RecordSpace(ctx, space, "DOCS"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-recording must not fail on the primary key.
	space.Name = "Docs Renamed"
	if err := m.RecordSpace(ctx, space, "DOCS"); err != nil {
		t.Fatalf("unexpected error on upsert: %v", err)
	}
}

// TestParseTimestamp tests timestamp parsing across SQLite formats.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		zero  bool
	}{
		{name: "sqlite default", value: "2025-06-01 12:30:45"},
		{name: "iso with Z", value: "2025-06-01T12:30:45Z"},
		{name: "rfc3339", value: "2025-06-01T12:30:45+02:00"},
		{name: "garbage", value: "not a time", zero: true},
		{name: "empty", value: "", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.value)
			if tt.zero != got.IsZero() {
				t.Errorf("parseTimestamp(%q) = %v, zero expectation %v", tt.value, got, tt.zero)
			}
			if !tt.zero && got.Year() != 2025 {
				t.Errorf("parseTimestamp(%q) = %v, expected year 2025", tt.value, got)
			}
		})
	}
}
