package export

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Link markers recognized in page bodies. Anchors whose href carries
// one of these are internal wiki links and get rewritten to local
// files; everything else is left untouched.
const (
	// displayMarker marks title-based links: .../display/<space>/<title>.
	displayMarker = "/display/"

	// viewPageMarker marks id-based links: .../pages/viewpage.action?pageId=<id>.
	viewPageMarker = "/pages/viewpage.action?pageId="
)

// Rewriter rewrites internal hyperlinks inside page bodies so they
// resolve inside the local mirror. Title-based links are resolved
// through the naming scope (allocating a name in advance when the
// target page has not been visited yet); id-based links map directly
// onto the forward file every exported page produces.
type Rewriter struct {
	// scope is the naming scope of the space being exported. It is
	// shared with the walker so forward allocations and walker
	// allocations agree.
	scope *Scope

	// warn receives the non-fatal parse warning, depth-indented like
	// the walker's progress output. Typically os.Stderr.
	warn io.Writer
}

// NewRewriter creates a Rewriter bound to the given naming scope.
// Warnings are written to warn.
func NewRewriter(scope *Scope, warn io.Writer) *Rewriter {
	return &Rewriter{scope: scope, warn: warn}
}

// Rewrite parses body as HTML, rewrites all internal links, and
// returns the serialized result. An unparsable body is a tolerated
// condition, not an error: a warning is written and the body is
// returned verbatim. An empty body stays empty without parsing.
func (r *Rewriter) Rewrite(body string, depth int) string {
	if body == "" {
		return ""
	}

	nodes, ok := r.parse(body, depth)
	if !ok {
		return body
	}

	for _, n := range nodes {
		r.rewriteTree(n)
	}

	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			// Render only fails on writer errors; strings.Builder has none.
			return body
		}
	}
	return b.String()
}

// parse attempts to parse body as an HTML fragment in body context.
// The failure path keeps the original content exportable.
func (r *Rewriter) parse(body string, depth int) ([]*html.Node, bool) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(body), ctx)
	if err != nil {
		fmt.Fprintf(r.warn, "%sWARNING: could not parse HTML content of last page, original content is exported as is\n",
			indent(depth))
		return nil, false
	}
	return nodes, true
}

// rewriteTree walks the node tree and rewrites every matching anchor.
func (r *Rewriter) rewriteTree(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		r.rewriteAnchor(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.rewriteTree(c)
	}
}

// rewriteAnchor rewrites a single anchor element in place. Anchors
// carrying a class attribute are already-local artifacts of the
// rendered body and are skipped.
func (r *Rewriter) rewriteAnchor(n *html.Node) {
	if getAttr(n, "class") != "" {
		return
	}

	href := getAttr(n, "href")
	if href == "" {
		return
	}

	switch {
	case strings.Contains(href, displayMarker):
		title, ok := titleFromDisplayLink(href)
		if !ok {
			return
		}
		local := r.scope.Allocate(title, false, "html")
		setAttr(n, "href", url.PathEscape(local))

	case strings.Contains(href, viewPageMarker):
		pageID := strings.SplitN(href, viewPageMarker, 2)[1]
		// The forward file is named after the raw id, independent of
		// any title-based naming, so no allocation happens here.
		setAttr(n, "href", url.PathEscape(SanitizeFileName(pageID)+".html"))
	}
}

// titleFromDisplayLink extracts the page title from a display-by-title
// link. The title is the path segment two after "display" (the segment
// in between is the space key); when the space key is absent the
// segment right after "display" is used. Placeholder "+" separators
// become spaces and percent-encoding is decoded.
func titleFromDisplayLink(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	segments := strings.Split(u.EscapedPath(), "/")
	displayIdx := -1
	for i, seg := range segments {
		if seg == "display" {
			displayIdx = i
			break
		}
	}
	if displayIdx < 0 {
		return "", false
	}

	var raw string
	switch {
	case displayIdx+2 < len(segments):
		raw = segments[displayIdx+2]
	case displayIdx+1 < len(segments):
		raw = segments[displayIdx+1]
	default:
		return "", false
	}

	raw = strings.ReplaceAll(raw, "+", " ")
	title, err := url.PathUnescape(raw)
	if err != nil {
		title = raw
	}
	return title, true
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// setAttr sets an attribute on an HTML node, replacing any existing value.
func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
