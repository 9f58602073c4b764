package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spacedump/spacedump/internal/database"
	"github.com/spacedump/spacedump/internal/model"
	"github.com/spacedump/spacedump/internal/wiki"
)

// Exporter drives a whole export run: it resets the export root,
// resolves the set of spaces, and exports each space into its own
// folder (walk the tree, then write the space index). Spaces are
// independent — each owns a fresh naming scope — so they can run
// sequentially or concurrently.
type Exporter struct {
	client   *wiki.Client
	renderer *Renderer
	logger   *slog.Logger

	// manifest, when non-nil, records every exported space and page.
	manifest *database.Manifest

	// out and errOut receive progress lines and warnings.
	out    io.Writer
	errOut io.Writer

	// exportFolder is the local root of the export, recreated per run.
	exportFolder string

	// attachmentFolder is the reserved per-space subfolder name.
	attachmentFolder string

	// spaces restricts the run to the listed space ids. Empty exports
	// every space visible to the account.
	spaces []string

	// pageLimit is the page size for paginated listings.
	pageLimit int

	// parallel is the number of spaces exported concurrently.
	parallel int
}

// Options configures an Exporter.
type Options struct {
	// ExportFolder is the local root of the export (required).
	ExportFolder string

	// AttachmentFolder is the reserved per-space subfolder name.
	// Defaults to "attachments".
	AttachmentFolder string

	// Spaces restricts the run to the listed space ids.
	Spaces []string

	// PageLimit is the page size for paginated listings (required, > 0).
	PageLimit int

	// Parallel is the number of spaces exported concurrently.
	// Values below 1 run sequentially.
	Parallel int

	// Manifest records exported spaces and pages, if non-nil.
	Manifest *database.Manifest

	// Out receives progress lines. Defaults to io.Discard.
	Out io.Writer

	// ErrOut receives warnings. Defaults to Out.
	ErrOut io.Writer

	// Logger records debug detail. Defaults to slog.Default().
	Logger *slog.Logger
}

// New creates an Exporter.
func New(client *wiki.Client, renderer *Renderer, opts Options) *Exporter {
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
	attachmentFolder := opts.AttachmentFolder
	if attachmentFolder == "" {
		attachmentFolder = "attachments"
	}
	parallel := opts.Parallel
	if parallel < 1 {
		parallel = 1
	}

	return &Exporter{
		client:           client,
		renderer:         renderer,
		logger:           logger,
		manifest:         opts.Manifest,
		out:              out,
		errOut:           errOut,
		exportFolder:     opts.ExportFolder,
		attachmentFolder: attachmentFolder,
		spaces:           opts.Spaces,
		pageLimit:        opts.PageLimit,
		parallel:         parallel,
	}
}

// Run executes the export and returns the run summary. The export
// root is deleted and recreated first; a run aborted by ctx leaves the
// partially written directories on disk as-is.
func (e *Exporter) Run(ctx context.Context) (*model.ExportSummary, error) {
	started := time.Now()

	if err := os.RemoveAll(e.exportFolder); err != nil {
		return nil, fmt.Errorf("failed to remove old export folder: %w", err)
	}
	if err := os.MkdirAll(e.exportFolder, 0750); err != nil {
		return nil, fmt.Errorf("failed to create export folder: %w", err)
	}

	spaceIDs, err := e.resolveSpaces(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(e.out, "Exporting %d space(s): %s\n\n", len(spaceIDs), strings.Join(spaceIDs, ", "))

	// The folder scope lives for the whole run so two spaces can never
	// claim the same folder name. Scope is internally locked, which is
	// all the serialization parallel exports need here.
	folderScope := NewScope()
	summaries := make([]model.SpaceSummary, len(spaceIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for i, spaceID := range spaceIDs {
		g.Go(func() error {
			summary, err := e.exportSpace(gctx, spaceID, i+1, len(spaceIDs), folderScope)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.ExportSummary{
		BaseURL:      e.client.BaseURL(),
		ExportFolder: e.exportFolder,
		StartedAt:    started,
		Duration:     time.Since(started),
		Spaces:       summaries,
	}, nil
}

// resolveSpaces returns the configured space ids, or discovers all
// visible spaces through the paginated listing when none are configured.
func (e *Exporter) resolveSpaces(ctx context.Context) ([]string, error) {
	if len(e.spaces) > 0 {
		return e.spaces, nil
	}

	refs, err := e.client.Spaces(ctx, e.pageLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

// exportSpace exports one space into its own folder. Space-level
// failures (duplicate folder, space fetch error) are recovered here
// with a warning so other spaces proceed; only context cancellation
// and disk errors abort the run.
func (e *Exporter) exportSpace(ctx context.Context, spaceID string, num, total int, folderScope *Scope) (model.SpaceSummary, error) {
	summary := model.SpaceSummary{SpaceID: spaceID}

	folderName := folderScope.Allocate(spaceID, true, "")
	spaceFolder := filepath.Join(e.exportFolder, folderName)
	summary.Folder = folderName

	if err := os.Mkdir(spaceFolder, 0750); err != nil {
		if errors.Is(err, fs.ErrExist) {
			// The same space id allocates the same memoized folder name,
			// so an existing folder means the space was listed twice.
			fmt.Fprintf(e.errOut, "WARNING: the space %s has been exported already, maybe it is configured twice\n", spaceID)
			summary.Skipped = true
			return summary, nil
		}
		return summary, fmt.Errorf("failed to create space folder: %w", err)
	}
	// Reserved for attachment support; the core exporter never writes here.
	if err := os.MkdirAll(filepath.Join(spaceFolder, e.attachmentFolder), 0750); err != nil {
		return summary, fmt.Errorf("failed to create attachment folder: %w", err)
	}

	space, err := e.client.Space(ctx, spaceID)
	if err != nil {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		fmt.Fprintf(e.errOut, "ERROR: %v\n", err)
		e.logger.Warn("space fetch failed, skipping space", "spaceID", spaceID, "error", err)
		summary.Error = err.Error()
		return summary, nil
	}
	summary.SpaceName = space.Name

	fmt.Fprintf(e.out, "SPACE (%d/%d): %s (%s)\n", num, total, space.Name, space.ID)

	scope := NewScope()
	var record func(page *model.Page, fileName string)
	if e.manifest != nil {
		record = func(page *model.Page, fileName string) {
			if err := e.manifest.RecordPage(ctx, space.ID, page, fileName); err != nil {
				e.logger.Warn("failed to record page in manifest", "pageID", page.ID, "error", err)
			}
		}
	}

	walker := NewWalker(e.client, e.renderer, scope, WalkerOptions{
		Folder:    spaceFolder,
		PageLimit: e.pageLimit,
		Out:       e.out,
		ErrOut:    e.errOut,
		Logger:    e.logger,
		Record:    record,
	})

	entry, err := walker.Walk(ctx, space.HomepageID, 0)
	if err != nil {
		return summary, err
	}
	summary.PagesExported = walker.Exported()
	summary.PagesFailed = walker.Failed()

	if entry != nil {
		indexTitle := fmt.Sprintf("Index of Space %s (%s)", space.Name, space.ID)
		indexPath := filepath.Join(spaceFolder, "index.html")
		if err := e.renderer.WriteHTML(indexPath, indexTitle, BuildIndex(entry)); err != nil {
			return summary, err
		}
	}

	if e.manifest != nil {
		if err := e.manifest.RecordSpace(ctx, space, folderName); err != nil {
			e.logger.Warn("failed to record space in manifest", "spaceID", space.ID, "error", err)
		}
	}

	return summary, nil
}
