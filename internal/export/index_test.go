package export

import (
	"strings"
	"testing"

	"github.com/spacedump/spacedump/internal/model"
)

// TestBuildIndex tests index markup generation.
func TestBuildIndex(t *testing.T) {
	t.Parallel()

	t.Run("nil entry renders nothing", func(t *testing.T) {
		t.Parallel()

		if got := BuildIndex(nil); got != "" {
			t.Errorf("expected empty markup, got %q", got)
		}
	})

	t.Run("leaf entry renders single anchor", func(t *testing.T) {
		t.Parallel()

		entry := &model.PathEntry{FilePath: "Home.html", Title: "Home"}
		got := BuildIndex(entry)

		want := `<a href="Home.html">Home</a>`
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("file path percent-encoded", func(t *testing.T) {
		t.Parallel()

		entry := &model.PathEntry{FilePath: "Getting Started.html", Title: "Getting Started"}
		got := BuildIndex(entry)

		if !strings.Contains(got, `href="Getting%20Started.html"`) {
			t.Errorf("expected percent-encoded href, got %q", got)
		}
	})

	t.Run("title HTML-escaped", func(t *testing.T) {
		t.Parallel()

		entry := &model.PathEntry{FilePath: "AB.html", Title: "A <b> & B"}
		got := BuildIndex(entry)

		if !strings.Contains(got, "A &lt;b&gt; &amp; B") {
			t.Errorf("expected escaped title, got %q", got)
		}
	})

	t.Run("nested tree renders nested lists", func(t *testing.T) {
		t.Parallel()

		// Depth three, branching two at the top.
		root := &model.PathEntry{
			FilePath: "Home.html",
			Title:    "Home",
			Children: []*model.PathEntry{
				{
					FilePath: "Guides.html",
					Title:    "Guides",
					Children: []*model.PathEntry{
						{FilePath: "Install.html", Title: "Install"},
						{FilePath: "Upgrade.html", Title: "Upgrade"},
					},
				},
				{FilePath: "FAQ.html", Title: "FAQ"},
			},
		}

		got := BuildIndex(root)

		if strings.Count(got, "<ul>") != 2 || strings.Count(got, "</ul>") != 2 {
			t.Errorf("expected two nested lists, got %q", got)
		}
		if strings.Count(got, "<li>") != 4 {
			t.Errorf("expected four list items, got %q", got)
		}

		// Discovery order is preserved.
		guides := strings.Index(got, "Guides.html")
		install := strings.Index(got, "Install.html")
		upgrade := strings.Index(got, "Upgrade.html")
		faq := strings.Index(got, "FAQ.html")
		if !(guides < install && install < upgrade && upgrade < faq) {
			t.Errorf("expected discovery order preserved, got %q", got)
		}
	})
}

// TestPathEntryCount tests subtree size counting.
func TestPathEntryCount(t *testing.T) {
	t.Parallel()

	root := &model.PathEntry{
		FilePath: "Home.html",
		Title:    "Home",
		Children: []*model.PathEntry{
			{FilePath: "A.html", Title: "A"},
			{
				FilePath: "B.html",
				Title:    "B",
				Children: []*model.PathEntry{
					{FilePath: "C.html", Title: "C"},
				},
			},
		},
	}

	if got := root.Count(); got != 4 {
		t.Errorf("expected count 4, got %d", got)
	}
}
