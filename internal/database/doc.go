// Package database provides the SQLite-backed export manifest.
//
// The manifest records, per space and per page, what the most recent
// export produced: identifiers, titles, allocated file names, and
// timestamps. It lives in the XDG data directory and survives across
// runs, so it can answer "what did the last export write" without
// re-reading the export folder.
package database
