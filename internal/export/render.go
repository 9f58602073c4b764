package export

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
)

//go:embed templates/page.html.tmpl
var defaultPageTemplate string

// Renderer wraps a page body and title into a complete HTML document
// and writes it to disk. The default template is embedded; a custom
// template file can be supplied through the configuration. Templates
// receive Title, Content, and AdditionalHeaders.
type Renderer struct {
	tmpl *template.Template
}

// pageData is the template payload for one rendered document.
type pageData struct {
	// Title is the document title, HTML-escaped by the template.
	Title string

	// Content is the page body. It is already HTML produced by the
	// service (and passed through the link rewriter), so it is not
	// escaped again.
	Content template.HTML

	// AdditionalHeaders are extra tags placed inside <head>, e.g. the
	// forward file's meta refresh.
	AdditionalHeaders []template.HTML
}

// NewRenderer creates a Renderer. templateFile overrides the built-in
// page template when non-empty.
func NewRenderer(templateFile string) (*Renderer, error) {
	text := defaultPageTemplate
	if templateFile != "" {
		data, err := os.ReadFile(templateFile) //nolint:gosec // User-provided template path is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to read template file: %w", err)
		}
		text = string(data)
	}

	tmpl, err := template.New("page").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// WriteHTML renders a complete document for the given title and body
// and writes it to path. additionalHeaders are inserted verbatim into
// the document head.
func (r *Renderer) WriteHTML(path, title, content string, additionalHeaders ...string) error {
	headers := make([]template.HTML, 0, len(additionalHeaders))
	for _, h := range additionalHeaders {
		headers = append(headers, template.HTML(h)) //nolint:gosec // Headers are exporter-generated tags
	}

	f, err := os.Create(path) //nolint:gosec // Path is built from allocator-sanitized names
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	data := pageData{
		Title:             title,
		Content:           template.HTML(content), //nolint:gosec // Body is service-rendered HTML
		AdditionalHeaders: headers,
	}

	if err := r.tmpl.Execute(f, data); err != nil {
		_ = f.Close() //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	return f.Close()
}
