package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spacedump/spacedump/internal/config"
	"github.com/spacedump/spacedump/internal/export"
	seclog "github.com/spacedump/spacedump/internal/log"
)

// NewPagesCmd creates the pages command.
func NewPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List the page ids of wiki spaces without exporting",
		Long: `Pages walks the page tree of each space exactly like export does,
but writes no files: it only prints the id of every reachable page.

Useful for sizing an export in advance or for feeding page ids to
other tooling.

Examples:
  # List the page ids of all configured spaces
  spacedump pages

  # List the page ids of one space
  spacedump pages --space DOCS`,
		RunE: runPagesCmd,
	}

	addConnectionFlags(cmd)
	cmd.Flags().StringSliceP("space", "s", nil,
		"Space identifier to list (repeatable; default: all visible spaces)")

	return cmd
}

// runPagesCmd executes the pages command.
func runPagesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := seclog.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runPages(ctx, cfg, logger)
}

// runPages walks the configured spaces and prints every page id.
func runPages(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	client, err := newWikiClient(cfg)
	if err != nil {
		return err
	}

	spaceIDs := cfg.Spaces
	if len(spaceIDs) == 0 {
		refs, err := client.Spaces(ctx, cfg.PageLimit)
		if err != nil {
			return fmt.Errorf("failed to list spaces: %w", err)
		}
		for _, ref := range refs {
			spaceIDs = append(spaceIDs, ref.ID)
		}
	}

	var all []string
	for _, spaceID := range spaceIDs {
		space, err := client.Space(ctx, spaceID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			logger.Warn("space fetch failed, skipping space", "spaceID", spaceID, "error", err)
			continue
		}

		fmt.Printf("SPACE: %s (%s)\n", space.Name, space.ID)

		walker := export.NewWalker(client, nil, export.NewScope(), export.WalkerOptions{
			Folder:    "",
			PageLimit: cfg.PageLimit,
			Out:       os.Stdout,
			ErrOut:    os.Stderr,
			Logger:    logger,
		})

		ids, err := walker.CollectIDs(ctx, space.HomepageID, 0)
		if err != nil {
			return err
		}
		all = append(all, ids...)
	}

	fmt.Printf("\nPage ids (%d):\n", len(all))
	for _, id := range all {
		fmt.Println(id)
	}
	return nil
}
