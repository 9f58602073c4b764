// Package wiki is the HTTP transport for the wiki REST API.
//
// The Client wraps a single net/http client configured with base URL,
// basic-auth credentials, custom headers, optional proxy, and TLS
// settings, and exposes the four operations the exporter consumes:
//
//   - Spaces: paginated listing of all visible spaces
//   - Space: space detail including the homepage id
//   - Content: page detail with title and rendered HTML body
//   - ChildPages: one page of a child listing plus the next cursor
//
// Pagination follows the service's opaque "_links.next" continuation
// paths, resolved against the base URL. Non-2xx responses are reported
// as *APIError; the exporter treats any error from this package as a
// transport failure and prunes the affected subtree.
package wiki
