package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Where the original service imposes a
// behavior (page size, folder names) the defaults follow it; the rest
// are conservative choices that work for most instances.
const (
	// DefaultTimeout is the per-request timeout. Wiki instances behind
	// corporate proxies can be slow, so this is generous.
	DefaultTimeout = 60 * time.Second

	// DefaultPageLimit is the page size used for paginated listings
	// (spaces and child pages). 25 matches the service default.
	DefaultPageLimit = 25

	// DefaultExportFolder is the local directory the export is written to.
	DefaultExportFolder = "export"

	// DefaultAttachmentFolder is the reserved per-space subfolder for
	// attachment support. The core exporter creates it but never writes
	// into it.
	DefaultAttachmentFolder = "attachments"

	// DefaultParallel is the number of spaces exported concurrently.
	// 1 keeps the run strictly sequential, matching the reference behavior.
	DefaultParallel = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "spacedump"
)

// Config holds all configuration options for spacedump.
// It is populated from the YAML config file and CLI flags, then passed
// through the application explicitly rather than read from globals.
type Config struct {
	// BaseURL is the root URL of the wiki instance, e.g.
	// "https://wiki.example.com". API paths are resolved against it.
	BaseURL string

	// Username is the account name for HTTP basic authentication.
	// Empty disables authentication.
	Username string

	// APIToken is the API token (or password) paired with Username.
	APIToken string

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string

	// ProxyURL routes all requests through the given HTTP(S) or SOCKS
	// proxy. Empty uses the environment proxy settings.
	ProxyURL string

	// InsecureTLS disables TLS certificate verification. Needed for
	// instances with self-signed certificates.
	InsecureTLS bool

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Spaces lists the space identifiers to export. Empty means all
	// spaces visible to the account, discovered via the paginated
	// space listing.
	Spaces []string

	// ExportFolder is the local root directory of the export. It is
	// deleted and recreated at the start of every run.
	ExportFolder string

	// PageLimit is the page size for paginated listings.
	PageLimit int

	// TemplateFile is an optional HTML template file used to wrap page
	// bodies. Empty uses the built-in template.
	TemplateFile string

	// Parallel is the number of spaces exported concurrently. Naming
	// scopes are per space, so spaces can run independently.
	Parallel int

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport switches the run summary to JSON output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport switches the run summary to Markdown output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the run summary to the given file instead of stdout.
	ReportFile string

	// ManifestDir is the directory of the SQLite export manifest.
	// Empty disables the manifest.
	ManifestDir string

	// ConfigFilePath is an explicitly requested config file path. Empty
	// triggers the default search (cwd, home, XDG config dir).
	ConfigFilePath string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be error-prone; this
// constructor also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:      DefaultTimeout,
		PageLimit:    DefaultPageLimit,
		ExportFolder: DefaultExportFolder,
		Parallel:     DefaultParallel,
		ManifestDir:  XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for spacedump, used for
// the export manifest database.
// On Linux: ~/.local/share/spacedump
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for spacedump.
// On Linux: ~/.config/spacedump
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem
// found. It is called once after flag and file merging, before any
// network traffic, so bad configurations fail fast with a clear message.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.PageLimit <= 0 {
		return ErrInvalidPageLimit
	}

	if c.Parallel <= 0 {
		return ErrInvalidParallel
	}

	if c.ExportFolder == "" {
		return ErrNoExportFolder
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return ErrInvalidProxyURL
		}
	}

	return nil
}
