// Package export implements the traversal-naming-rewriting engine that
// mirrors a remote wiki into a local directory of linked HTML files.
//
// # Components
//
//   - Scope: the per-space naming registry. Maps titles to unique,
//     filesystem-safe file names, memoizing repeats and disambiguating
//     sanitization collisions with numeric suffixes.
//   - Rewriter: parses page bodies and rewrites internal hyperlinks to
//     local file references, allocating names in advance for pages that
//     have not been visited yet. Unparsable bodies are exported verbatim
//     with a warning.
//   - Walker: depth-first page traversal. Per page: fetch, allocate a
//     name, rewrite the body, write the primary document plus an
//     id-named forward document, then paginate and recurse through the
//     children. A failed fetch prunes that subtree with a warning and
//     leaves siblings untouched; no retry is attempted.
//   - BuildIndex: renders the walker's path tree into the nested
//     navigation list written as the space's index.html.
//   - Renderer: wraps bodies into complete documents via html/template
//     and writes them to disk.
//   - Exporter: the per-run space loop tying all of the above together.
//
// # Naming guarantees
//
// Within one space, every distinct title maps to exactly one file name,
// repeated lookups are idempotent, and colliding titles receive
// "_<n>"-suffixed names in first-seen order. Because every exported
// page also produces a "<id>.html" forward file, id-based links are
// resolvable no matter which title-based name the target ends up with.
// A title-based link whose target is never visited stays dangling; that
// is accepted best-effort behavior.
package export
