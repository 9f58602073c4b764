package wiki

import (
	"errors"
	"fmt"
)

// ErrNoBaseURL is returned by NewClient when no base URL is provided.
var ErrNoBaseURL = errors.New("wiki client requires a base URL")

// APIError is returned when the wiki service answers with a non-2xx
// status. It carries enough context for the caller to print a useful
// warning without re-deriving the request.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// URL is the request URL that produced the error.
	URL string

	// Message is a short excerpt of the response body, if any.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("wiki API request failed: %s returned %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("wiki API request failed: %s returned %d", e.URL, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with status 404.
// Pruned pages and stale space identifiers commonly surface this way.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
