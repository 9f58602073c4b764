package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spacedump/spacedump/internal/config"
	"github.com/spacedump/spacedump/internal/database"
	"github.com/spacedump/spacedump/internal/export"
	seclog "github.com/spacedump/spacedump/internal/log"
	"github.com/spacedump/spacedump/internal/model"
	"github.com/spacedump/spacedump/internal/report"
	"github.com/spacedump/spacedump/internal/wiki"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export wiki spaces to local HTML files",
		Long: `Export mirrors wiki spaces into a local directory of linked HTML files.

Per space it creates a folder with one HTML file per page (named after
the page title), one <id>.html forward file per page, a reserved
attachments subfolder, and an index.html navigating the page tree.
Internal links in page bodies are rewritten to local file references.
The export folder is deleted and recreated at the start of every run.

Examples:
  # Export the spaces configured in .spacedump
  spacedump export

  # Export two specific spaces
  spacedump export --space DOCS --space TEAM

  # Export everything from a given instance
  spacedump export --base-url https://wiki.example.com --username me --token secret

  # Write a Markdown run summary to a file
  spacedump export --markdown --output report.md`,
		RunE: runExportCmd,
	}

	addConnectionFlags(cmd)

	// Export behavior flags
	cmd.Flags().StringSliceP("space", "s", nil,
		"Space identifier to export (repeatable; default: all visible spaces)")
	cmd.Flags().StringP("folder", "f", "",
		"Export folder (deleted and recreated per run; default: ./export)")
	cmd.Flags().String("template", "",
		"Custom HTML page template file")
	cmd.Flags().IntP("parallel", "p", config.DefaultParallel,
		"Number of spaces exported concurrently")
	cmd.Flags().Bool("no-manifest", false,
		"Disable the SQLite export manifest")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON run summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown run summary (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the run summary to the given file instead of stdout")

	return cmd
}

// addConnectionFlags registers the flags shared by export and pages.
func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .spacedump in current or home directory)")
	cmd.Flags().String("base-url", "",
		"Base URL of the wiki instance, e.g. https://wiki.example.com")
	cmd.Flags().String("username", "",
		"Username for HTTP basic authentication")
	cmd.Flags().String("token", "",
		"API token (or password) for HTTP basic authentication")
	cmd.Flags().String("proxy", "",
		"Proxy URL for all requests (default: environment proxy settings)")
	cmd.Flags().Bool("insecure", false,
		"Skip TLS certificate verification")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().Int("limit", config.DefaultPageLimit,
		"Page size for paginated listings")
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := seclog.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// An interrupt cancels the context; the aborted run returns a
	// non-nil error and the process exits 1. Partially written
	// directories stay on disk as-is.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runExport(ctx, cfg, logger)
}

// buildConfig merges defaults, the configuration file, and CLI flags,
// in that order, so flags always win.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPathFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPathFlag

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if configPathFlag != "" {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", configPathFlag)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// applyFlags copies explicitly set flag values onto the config.
// Flags carrying defaults (timeout, limit, parallel) only override the
// file when the user actually set them.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if v, err := flags.GetString("base-url"); err == nil && v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v, err := flags.GetString("username"); err == nil && v != "" {
		cfg.Username = v
	}
	if v, err := flags.GetString("token"); err == nil && v != "" {
		cfg.APIToken = v
	}
	if v, err := flags.GetString("proxy"); err == nil && v != "" {
		cfg.ProxyURL = v
	}
	if flags.Changed("insecure") {
		v, err := flags.GetBool("insecure")
		if err != nil {
			return err
		}
		cfg.InsecureTLS = v
	}
	if flags.Changed("timeout") {
		v, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = v
	}
	if flags.Changed("limit") {
		v, err := flags.GetInt("limit")
		if err != nil {
			return err
		}
		cfg.PageLimit = v
	}

	// Export-only flags; pages does not register these.
	if f := flags.Lookup("space"); f != nil && f.Changed {
		v, err := flags.GetStringSlice("space")
		if err != nil {
			return err
		}
		cfg.Spaces = v
	}
	if f := flags.Lookup("folder"); f != nil {
		if v, err := flags.GetString("folder"); err == nil && v != "" {
			cfg.ExportFolder = v
		}
	}
	if f := flags.Lookup("template"); f != nil {
		if v, err := flags.GetString("template"); err == nil && v != "" {
			cfg.TemplateFile = v
		}
	}
	if f := flags.Lookup("parallel"); f != nil && f.Changed {
		v, err := flags.GetInt("parallel")
		if err != nil {
			return err
		}
		cfg.Parallel = v
	}
	if f := flags.Lookup("no-manifest"); f != nil {
		if v, err := flags.GetBool("no-manifest"); err == nil && v {
			cfg.ManifestDir = ""
		}
	}
	if f := flags.Lookup("json"); f != nil {
		if v, err := flags.GetBool("json"); err == nil {
			cfg.JSONReport = v
		}
	}
	if f := flags.Lookup("markdown"); f != nil {
		if v, err := flags.GetBool("markdown"); err == nil {
			cfg.MarkdownReport = v
		}
	}
	if f := flags.Lookup("output"); f != nil {
		if v, err := flags.GetString("output"); err == nil {
			cfg.ReportFile = v
		}
	}

	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newWikiClient builds the transport from the configuration.
func newWikiClient(cfg *config.Config) (*wiki.Client, error) {
	client, err := wiki.NewClient(wiki.Options{
		BaseURL:     cfg.BaseURL,
		Username:    cfg.Username,
		APIToken:    cfg.APIToken,
		Headers:     cfg.Headers,
		ProxyURL:    cfg.ProxyURL,
		InsecureTLS: cfg.InsecureTLS,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create wiki client: %w", err)
	}
	return client, nil
}

// printBanner writes the welcome output.
func printBanner() {
	title := fmt.Sprintf("S P A C E D U M P  %s", getVersion())
	fmt.Printf("\n\t %s\n", title)
	fmt.Printf("\t %s\n\n", strings.Repeat("=", len(title)))
	fmt.Println("... exporting spaces and pages (attachments excluded)")
	fmt.Println()
}

// runExport executes the export run.
func runExport(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	printBanner()

	client, err := newWikiClient(cfg)
	if err != nil {
		return err
	}

	renderer, err := export.NewRenderer(cfg.TemplateFile)
	if err != nil {
		return err
	}

	var manifest *database.Manifest
	if cfg.ManifestDir != "" {
		manifest, err = database.Open(cfg.ManifestDir)
		if err != nil {
			return fmt.Errorf("failed to open export manifest: %w", err)
		}
		defer manifest.Close()
		logger.Info("export manifest opened", "path", manifest.Path())
	}

	exporter := export.New(client, renderer, export.Options{
		ExportFolder:     cfg.ExportFolder,
		AttachmentFolder: config.DefaultAttachmentFolder,
		Spaces:           cfg.Spaces,
		PageLimit:        cfg.PageLimit,
		Parallel:         cfg.Parallel,
		Manifest:         manifest,
		Out:              os.Stdout,
		ErrOut:           os.Stderr,
		Logger:           logger,
	})

	summary, err := exporter.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println("\n\nFinished!")
	fmt.Println()

	return outputSummary(cfg, summary)
}

// outputSummary writes the run summary in the requested format.
func outputSummary(cfg *config.Config, summary *model.ExportSummary) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-provided report path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewTextWriter(output)
	}

	_, err := writer.Write(summary)
	return err
}
