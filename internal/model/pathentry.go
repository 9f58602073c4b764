package model

// PathEntry is the per-page record produced by the tree walker: the
// local file the page was written to, the page title, and the entries
// of its children in discovery order.
//
// Each PathEntry is exclusively owned by its parent; the overall
// structure is a plain tree with no back-pointers, so cycles are
// impossible by construction. A page whose fetch failed contributes no
// entry at all.
type PathEntry struct {
	// FilePath is the allocated local file name of the primary document,
	// relative to the space folder.
	FilePath string `json:"file_path"`

	// Title is the page title used as display text in the index.
	Title string `json:"title"`

	// Children holds the entries of the page's child pages in the order
	// the service returned them.
	Children []*PathEntry `json:"children,omitempty"`
}

// Count returns the number of entries in the tree rooted at e,
// including e itself. A nil entry counts as zero.
func (e *PathEntry) Count() int {
	if e == nil {
		return 0
	}
	n := 1
	for _, c := range e.Children {
		n += c.Count()
	}
	return n
}
