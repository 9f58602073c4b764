package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration. They are
// package-level sentinels so callers can match them with errors.Is().
var (
	// ErrNoBaseURL is returned when no wiki base URL is configured.
	// Without a base URL there is nothing to export from.
	ErrNoBaseURL = errors.New("no base URL configured: set base_url in the config file or use --base-url")

	// ErrInvalidBaseURL is returned when the base URL cannot be parsed
	// or uses a scheme other than http or https.
	ErrInvalidBaseURL = errors.New("invalid base URL: expected http(s)://host")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidPageLimit is returned when the pagination limit is not positive.
	// The service rejects limit=0, and a negative limit is meaningless.
	ErrInvalidPageLimit = errors.New("invalid page limit: must be positive")

	// ErrInvalidParallel is returned when the space concurrency is not positive.
	ErrInvalidParallel = errors.New("invalid parallelism: must be positive")

	// ErrNoExportFolder is returned when the export folder is empty.
	ErrNoExportFolder = errors.New("no export folder configured")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidProxyURL is returned when the proxy URL cannot be parsed.
	ErrInvalidProxyURL = errors.New("invalid proxy URL")
)
