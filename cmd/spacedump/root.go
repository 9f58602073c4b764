package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for spacedump.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spacedump",
		Short: "Export wiki spaces and pages to linked local HTML files",
		Long: `spacedump exports spaces and pages of a Confluence-style wiki into a
self-contained local directory of linked HTML documents (attachments excluded).

Each space becomes its own folder containing one HTML file per page, an
id-named forward file per page so id-based links keep working, and an
index.html navigating the page tree. Internal links inside page bodies
are rewritten to resolve inside the local mirror.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewPagesCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
