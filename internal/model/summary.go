package model

import "time"

// SpaceSummary holds the outcome of exporting a single space.
type SpaceSummary struct {
	// SpaceID is the identifier of the exported space.
	SpaceID string `json:"space_id"`

	// SpaceName is the display name of the exported space.
	SpaceName string `json:"space_name"`

	// Folder is the local folder name the space was exported into.
	Folder string `json:"folder"`

	// PagesExported is the number of pages written successfully.
	// Each exported page produces two files (primary plus forward).
	PagesExported int `json:"pages_exported"`

	// PagesFailed is the number of pages whose fetch failed and whose
	// subtree was pruned.
	PagesFailed int `json:"pages_failed"`

	// Skipped is true when the whole space was skipped, e.g. because
	// its output folder already existed.
	Skipped bool `json:"skipped,omitempty"`

	// Error holds the message of a space-level failure, if any.
	Error string `json:"error,omitempty"`
}

// ExportSummary aggregates the outcome of one export run across all
// spaces. It is the input to the report writers.
type ExportSummary struct {
	// BaseURL is the wiki instance the export was taken from.
	BaseURL string `json:"base_url"`

	// ExportFolder is the local root folder of the export.
	ExportFolder string `json:"export_folder"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// Spaces holds one summary per space in export order.
	Spaces []SpaceSummary `json:"spaces"`
}

// TotalPages returns the number of pages exported across all spaces.
func (s *ExportSummary) TotalPages() int {
	var n int
	for _, sp := range s.Spaces {
		n += sp.PagesExported
	}
	return n
}

// TotalFailed returns the number of failed pages across all spaces.
func (s *ExportSummary) TotalFailed() int {
	var n int
	for _, sp := range s.Spaces {
		n += sp.PagesFailed
	}
	return n
}
