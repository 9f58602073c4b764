package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".spacedump"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File mirrors the YAML structure of the .spacedump configuration file.
// All fields are optional; CLI flags override values loaded from it.
type File struct {
	// BaseURL is the root URL of the wiki instance.
	BaseURL string `yaml:"base_url,omitempty"`

	// Username and APIToken configure HTTP basic authentication.
	Username string `yaml:"username,omitempty"`
	APIToken string `yaml:"api_token,omitempty"`

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Proxy routes requests through the given proxy URL.
	Proxy string `yaml:"proxy,omitempty"`

	// InsecureTLS disables TLS certificate verification.
	InsecureTLS bool `yaml:"insecure_tls,omitempty"`

	// Timeout is the per-request timeout, e.g. "60s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Spaces lists the space identifiers to export. Empty exports all.
	Spaces []string `yaml:"spaces,omitempty"`

	// ExportFolder is the local root directory of the export.
	ExportFolder string `yaml:"export_folder,omitempty"`

	// PageLimit is the page size for paginated listings.
	PageLimit int `yaml:"page_limit,omitempty"`

	// TemplateFile points at a custom HTML page template.
	TemplateFile string `yaml:"template_file,omitempty"`

	// Parallel is the number of spaces exported concurrently.
	Parallel int `yaml:"parallel,omitempty"`
}

// LoadConfigFile loads a configuration file from the given path.
// If the file does not exist it returns ErrConfigNotFound; callers
// decide whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies the file's non-zero values onto the config. Values the
// file does not set keep whatever the config already holds, so flag
// defaults and flag overrides survive the merge.
func (f *File) Apply(c *Config) {
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.Username != "" {
		c.Username = f.Username
	}
	if f.APIToken != "" {
		c.APIToken = f.APIToken
	}
	if len(f.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			c.Headers[k] = v
		}
	}
	if f.Proxy != "" {
		c.ProxyURL = f.Proxy
	}
	if f.InsecureTLS {
		c.InsecureTLS = true
	}
	if f.Timeout > 0 {
		c.Timeout = f.Timeout
	}
	if len(f.Spaces) > 0 {
		c.Spaces = f.Spaces
	}
	if f.ExportFolder != "" {
		c.ExportFolder = f.ExportFolder
	}
	if f.PageLimit > 0 {
		c.PageLimit = f.PageLimit
	}
	if f.TemplateFile != "" {
		c.TemplateFile = f.TemplateFile
	}
	if f.Parallel > 0 {
		c.Parallel = f.Parallel
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. .spacedump in the current directory
//  3. .spacedump in the user's home directory
//  4. config.yaml in the XDG config directory
//
// Returns the path to the configuration file, or empty string if none exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return ""
}
