package wiki

// SpaceRef identifies one space in a paginated space listing.
// The homepage id is not part of the listing; fetch it with Space().
type SpaceRef struct {
	// ID is the stable space identifier.
	ID string `json:"id"`

	// Name is the display name of the space.
	Name string `json:"name"`
}

// pageLinks holds the pagination links of a listing response. Next is
// an opaque path (including the continuation cursor) to be resolved
// against the base URL; empty means the listing is exhausted.
type pageLinks struct {
	Next string `json:"next"`
}

// spacesResponse is one page of the space listing.
type spacesResponse struct {
	Results []SpaceRef `json:"results"`
	Links   pageLinks  `json:"_links"`
}

// spaceResponse is the detail view of a single space.
type spaceResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HomepageID string `json:"homepageId"`
}

// contentBody carries the rendered HTML of a page. The service nests
// it two levels deep under the requested representation.
type contentBody struct {
	View struct {
		Value string `json:"value"`
	} `json:"view"`
}

// contentResponse is the detail view of a single content page.
type contentResponse struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Body  contentBody `json:"body"`
}

// childRef identifies one child page in a child listing.
type childRef struct {
	ID string `json:"id"`
}

// childrenResponse is one page of a child-page listing.
type childrenResponse struct {
	Results []childRef `json:"results"`
	Links   pageLinks  `json:"_links"`
}
