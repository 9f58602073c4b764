package model

// Space represents a top-level wiki container of pages.
// It is fetched once per export and treated as immutable afterwards.
type Space struct {
	// ID is the stable, service-assigned identifier of the space.
	ID string `json:"id"`

	// Name is the display name of the space.
	Name string `json:"name"`

	// HomepageID is the identifier of the space's root content page.
	// The export of a space starts at this page.
	HomepageID string `json:"homepage_id"`
}

// Page represents one unit of wiki content at fetch time.
//
// Title is mutable upstream; we treat it as a fixed snapshot taken when
// the page was fetched. Children are discovered separately through
// paginated listings and are therefore not part of this struct.
type Page struct {
	// ID is the stable, service-assigned identifier of the page.
	ID string `json:"id"`

	// Title is the page title as returned by the service.
	Title string `json:"title"`

	// Body is the rendered HTML body of the page. May be empty.
	Body string `json:"body"`
}
