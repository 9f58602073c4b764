package export

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spacedump/spacedump/internal/model"
	"github.com/spacedump/spacedump/internal/wiki"
)

// forwardMessage is the human-readable body of a forward file, shown
// when the browser does not follow the meta refresh.
const forwardMessage = `<p>If you are not redirected automatically, follow this link: <a href="%s">%s</a></p>`

// Walker exports one space's page tree depth-first. Per page it
// fetches the content, allocates a file name, rewrites the body's
// internal links, writes the primary document plus an id-named forward
// document, and paginates through the children, recursing with the
// same naming scope so allocations stay consistent across the subtree.
type Walker struct {
	// client fetches pages and child listings.
	client *wiki.Client

	// renderer writes finished documents to disk.
	renderer *Renderer

	// scope is the space's naming scope, shared with the rewriter.
	scope *Scope

	// rewriter repairs internal links in page bodies.
	rewriter *Rewriter

	// folder is the local space folder all files are written into.
	folder string

	// pageLimit is the page size for child listings.
	pageLimit int

	// out receives depth-indented progress lines.
	out io.Writer

	// errOut receives depth-indented warnings for pruned subtrees.
	errOut io.Writer

	// logger records debug detail alongside the user-facing output.
	logger *slog.Logger

	// record, when set, is called once per exported page. The exporter
	// uses it to feed the manifest database.
	record func(page *model.Page, fileName string)

	// exported and failed count pages for the space summary.
	exported int
	failed   int
}

// WalkerOptions configures a Walker.
type WalkerOptions struct {
	// Folder is the local space folder (required).
	Folder string

	// PageLimit is the page size for child listings (required, > 0).
	PageLimit int

	// Out receives progress lines. Defaults to io.Discard.
	Out io.Writer

	// ErrOut receives warnings. Defaults to Out.
	ErrOut io.Writer

	// Logger records debug detail. Defaults to slog.Default().
	Logger *slog.Logger

	// Record is called once per exported page, if set.
	Record func(page *model.Page, fileName string)
}

// NewWalker creates a Walker for one space export. The scope must be
// fresh per space and is shared between walker and rewriter.
func NewWalker(client *wiki.Client, renderer *Renderer, scope *Scope, opts WalkerOptions) *Walker {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	errOut := opts.ErrOut
	if errOut == nil {
		errOut = out
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Walker{
		client:    client,
		renderer:  renderer,
		scope:     scope,
		rewriter:  NewRewriter(scope, errOut),
		folder:    opts.Folder,
		pageLimit: opts.PageLimit,
		out:       out,
		errOut:    errOut,
		logger:    logger,
		record:    opts.Record,
	}
}

// Exported returns the number of pages written so far.
func (w *Walker) Exported() int { return w.exported }

// Failed returns the number of pages whose fetch failed so far.
func (w *Walker) Failed() int { return w.failed }

// Walk exports the page with the given id and, recursively, all of its
// children. It returns the page's path entry, or nil when the fetch
// failed: the subtree is pruned with a warning and the caller carries
// on with the page's siblings. The only non-nil error is context
// cancellation, which aborts the whole walk.
func (w *Walker) Walk(ctx context.Context, pageID string, depth int) (*model.PathEntry, error) {
	page, err := w.client.Content(ctx, pageID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		w.failed++
		fmt.Fprintf(w.errOut, "%sERROR: %v\n", indent(depth+1), err)
		w.logger.Warn("page fetch failed, pruning subtree", "pageID", pageID, "error", err)
		return nil, nil
	}

	fmt.Fprintf(w.out, "%sPAGE: %s (%s)\n", indent(depth+1), page.Title, page.ID)

	fileName := w.scope.Allocate(page.Title, false, "html")
	body := w.rewriter.Rewrite(page.Body, depth+1)

	if err := w.renderer.WriteHTML(filepath.Join(w.folder, fileName), page.Title, body); err != nil {
		return nil, err
	}
	if err := w.writeForwardFile(page, fileName); err != nil {
		return nil, err
	}

	w.exported++
	if w.record != nil {
		w.record(page, fileName)
	}

	entry := &model.PathEntry{FilePath: fileName, Title: page.Title}

	// Children are discovered through paginated listings; their order
	// is the service's order and is preserved in the entry.
	cursor := ""
	for {
		ids, next, err := w.client.ChildPages(ctx, pageID, cursor, w.pageLimit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A failed listing page prunes the remaining children but
			// keeps the page itself and the children seen so far.
			fmt.Fprintf(w.errOut, "%sERROR: %v\n", indent(depth+1), err)
			w.logger.Warn("child listing failed", "pageID", pageID, "error", err)
			break
		}

		for _, childID := range ids {
			child, err := w.Walk(ctx, childID, depth+1)
			if err != nil {
				return nil, err
			}
			if child != nil {
				entry.Children = append(entry.Children, child)
			}
		}

		if next == "" {
			break
		}
		cursor = next
	}

	return entry, nil
}

// writeForwardFile writes the id-named redirect document that makes
// id-based links resolvable regardless of title-based naming.
func (w *Walker) writeForwardFile(page *model.Page, fileName string) error {
	localLink := url.PathEscape(fileName)
	title := "Forward to page " + page.Title
	content := fmt.Sprintf(forwardMessage, localLink, html.EscapeString(page.Title))
	refresh := fmt.Sprintf(`<meta http-equiv="refresh" content="0; url=%s" />`, localLink)

	path := filepath.Join(w.folder, page.ID+".html")
	return w.renderer.WriteHTML(path, title, content, refresh)
}

// CollectIDs walks the tree like Walk but only gathers page ids,
// writing no files. Used by the pages subcommand.
func (w *Walker) CollectIDs(ctx context.Context, pageID string, depth int) ([]string, error) {
	page, err := w.client.Content(ctx, pageID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		w.failed++
		fmt.Fprintf(w.errOut, "%sERROR: %v\n", indent(depth+1), err)
		return nil, nil
	}

	fmt.Fprintf(w.out, "%sPAGE: %s (%s)\n", indent(depth+1), page.Title, page.ID)
	ids := []string{page.ID}

	cursor := ""
	for {
		childIDs, next, err := w.client.ChildPages(ctx, pageID, cursor, w.pageLimit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(w.errOut, "%sERROR: %v\n", indent(depth+1), err)
			break
		}

		for _, childID := range childIDs {
			sub, err := w.CollectIDs(ctx, childID, depth+1)
			if err != nil {
				return nil, err
			}
			ids = append(ids, sub...)
		}

		if next == "" {
			break
		}
		cursor = next
	}

	return ids, nil
}

// indent returns the tab prefix for depth-indented output lines.
func indent(depth int) string {
	return strings.Repeat("\t", depth)
}
