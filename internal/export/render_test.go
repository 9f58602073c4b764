package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewRenderer tests renderer creation.
func TestNewRenderer(t *testing.T) {
	t.Parallel()

	t.Run("default template", func(t *testing.T) {
		t.Parallel()

		r, err := NewRenderer("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r == nil {
			t.Fatal("expected renderer")
		}
	})

	t.Run("custom template file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.html")
		tmpl := `<html><title>{{.Title}}</title><body>{{.Content}}</body></html>`
		if err := os.WriteFile(path, []byte(tmpl), 0600); err != nil {
			t.Fatalf("failed to write template: %v", err)
		}

		r, err := NewRenderer(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := filepath.Join(t.TempDir(), "out.html")
		if err := r.WriteHTML(out, "Custom", "<p>body</p>"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(content), "<title>Custom</title>") {
			t.Errorf("expected custom template output, got %q", content)
		}
	})

	t.Run("missing template file", func(t *testing.T) {
		t.Parallel()

		if _, err := NewRenderer(filepath.Join(t.TempDir(), "missing.html")); err == nil {
			t.Error("expected error for missing template file")
		}
	})

	t.Run("invalid template syntax", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.html")
		if err := os.WriteFile(path, []byte("{{.Title"), 0600); err != nil {
			t.Fatalf("failed to write template: %v", err)
		}

		if _, err := NewRenderer(path); err == nil {
			t.Error("expected error for invalid template")
		}
	})
}

// TestRendererWriteHTML tests document rendering.
func TestRendererWriteHTML(t *testing.T) {
	t.Parallel()

	newDefaultRenderer := func(t *testing.T) *Renderer {
		t.Helper()
		r, err := NewRenderer("")
		if err != nil {
			t.Fatalf("failed to create renderer: %v", err)
		}
		return r
	}

	t.Run("writes complete document", func(t *testing.T) {
		t.Parallel()

		r := newDefaultRenderer(t)
		path := filepath.Join(t.TempDir(), "page.html")

		if err := r.WriteHTML(path, "My Page", "<p>Hello</p>"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		doc := string(content)
		if !strings.Contains(doc, "<!DOCTYPE html>") {
			t.Error("expected doctype")
		}
		if !strings.Contains(doc, "<title>My Page</title>") {
			t.Error("expected title in head")
		}
		if !strings.Contains(doc, "<h1>My Page</h1>") {
			t.Error("expected title heading")
		}
		if !strings.Contains(doc, "<p>Hello</p>") {
			t.Error("expected body content verbatim")
		}
	})

	t.Run("escapes title but not content", func(t *testing.T) {
		t.Parallel()

		r := newDefaultRenderer(t)
		path := filepath.Join(t.TempDir(), "page.html")

		if err := r.WriteHTML(path, "A & B", "<em>kept</em>"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		doc := string(content)
		if !strings.Contains(doc, "A &amp; B") {
			t.Error("expected escaped title")
		}
		if !strings.Contains(doc, "<em>kept</em>") {
			t.Error("expected content unescaped")
		}
	})

	t.Run("additional headers land in head", func(t *testing.T) {
		t.Parallel()

		r := newDefaultRenderer(t)
		path := filepath.Join(t.TempDir(), "forward.html")
		refresh := `<meta http-equiv="refresh" content="0; url=Target.html" />`

		if err := r.WriteHTML(path, "Forward", "<p>follow</p>", refresh); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		doc := string(content)
		head := doc[:strings.Index(doc, "<body>")]
		if !strings.Contains(head, refresh) {
			t.Errorf("expected meta refresh inside head, got %q", head)
		}
	})

	t.Run("unwritable path returns error", func(t *testing.T) {
		t.Parallel()

		r := newDefaultRenderer(t)
		path := filepath.Join(t.TempDir(), "missing-dir", "page.html")

		if err := r.WriteHTML(path, "X", ""); err == nil {
			t.Error("expected error for unwritable path")
		}
	})
}
