package export

import (
	"html"
	"net/url"
	"strings"

	"github.com/spacedump/spacedump/internal/model"
)

// BuildIndex renders the path tree of one space into nested navigation
// markup. Every entry becomes an anchor pointing at its primary file;
// entries with children are followed by a list with one item per child,
// in discovery order. The caller wraps the result into a full document
// via the Renderer and writes it as the space's index.html.
//
// BuildIndex is pure: it performs no naming, no I/O, and touches no
// shared state.
func BuildIndex(entry *model.PathEntry) string {
	if entry == nil {
		return ""
	}

	var b strings.Builder
	buildIndex(&b, entry)
	return b.String()
}

// buildIndex appends the markup of one entry and its subtree to b.
func buildIndex(b *strings.Builder, entry *model.PathEntry) {
	b.WriteString(`<a href="`)
	b.WriteString(url.PathEscape(entry.FilePath))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(entry.Title))
	b.WriteString(`</a>`)

	if len(entry.Children) == 0 {
		return
	}

	b.WriteString("<ul>\n")
	for _, child := range entry.Children {
		b.WriteString("\t<li>")
		buildIndex(b, child)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
