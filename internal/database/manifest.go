package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/spacedump/spacedump/internal/model"
)

// Manifest is the SQLite-backed record of what an export run produced:
// one row per exported space and one row per exported page, keyed by
// the service identifiers. Later runs overwrite earlier rows, so the
// manifest always reflects the most recent export of each page.
type Manifest struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// PageRecord is one manifest row for an exported page.
type PageRecord struct {
	// SpaceID is the identifier of the space the page belongs to.
	SpaceID string `json:"space_id"`

	// PageID is the service-assigned page identifier.
	PageID string `json:"page_id"`

	// Title is the page title at export time.
	Title string `json:"title"`

	// FileName is the allocated local file name of the primary document.
	FileName string `json:"file_name"`

	// ExportedAt is when the page was written.
	ExportedAt time.Time `json:"exported_at"`
}

// Open opens or creates the manifest database under dir.
// The directory is created if needed; WAL mode is enabled for
// concurrent readers during parallel space exports.
func Open(dir string) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create manifest directory: %w", err)
	}

	dbPath := filepath.Join(dir, "spacedump.db")
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest database: %w", err)
	}

	// SQLite supports a single writer; funnel everything through one
	// connection so concurrent space exports serialize cleanly.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	m := &Manifest{db: db, dbPath: dbPath}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := m.createTables(); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return m, nil
}

// Close closes the database connection.
func (m *Manifest) Close() error {
	return m.db.Close()
}

// Path returns the path of the manifest database file.
func (m *Manifest) Path() string {
	return m.dbPath
}

// createTables creates the manifest schema if it doesn't exist.
func (m *Manifest) createTables() error {
	schema := `
	-- One row per exported space, latest export wins.
	CREATE TABLE IF NOT EXISTS spaces (
		space_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		folder TEXT NOT NULL,
		exported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- One row per exported page, latest export wins.
	CREATE TABLE IF NOT EXISTS pages (
		space_id TEXT NOT NULL,
		page_id TEXT NOT NULL,
		title TEXT NOT NULL,
		file_name TEXT NOT NULL,
		exported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (space_id, page_id)
	);

	CREATE INDEX IF NOT EXISTS idx_pages_space ON pages(space_id);
	`

	_, err := m.db.ExecContext(context.Background(), schema)
	return err
}

// RecordSpace stores or replaces the manifest row of an exported space.
func (m *Manifest) RecordSpace(ctx context.Context, space *model.Space, folder string) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO spaces (space_id, name, folder, exported_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(space_id) DO UPDATE SET
			name = excluded.name,
			folder = excluded.folder,
			exported_at = excluded.exported_at`,
		space.ID, space.Name, folder)
	if err != nil {
		return fmt.Errorf("failed to record space %s: %w", space.ID, err)
	}
	return nil
}

// RecordPage stores or replaces the manifest row of an exported page.
func (m *Manifest) RecordPage(ctx context.Context, spaceID string, page *model.Page, fileName string) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO pages (space_id, page_id, title, file_name, exported_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(space_id, page_id) DO UPDATE SET
			title = excluded.title,
			file_name = excluded.file_name,
			exported_at = excluded.exported_at`,
		spaceID, page.ID, page.Title, fileName)
	if err != nil {
		return fmt.Errorf("failed to record page %s: %w", page.ID, err)
	}
	return nil
}

// Pages returns the manifest rows of a space, newest first.
func (m *Manifest) Pages(ctx context.Context, spaceID string) ([]PageRecord, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT space_id, page_id, title, file_name, exported_at
		FROM pages WHERE space_id = ?
		ORDER BY exported_at DESC, page_id`,
		spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var records []PageRecord
	for rows.Next() {
		var r PageRecord
		var exportedAt string
		if err := rows.Scan(&r.SpaceID, &r.PageID, &r.Title, &r.FileName, &exportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page row: %w", err)
		}
		r.ExportedAt = parseTimestamp(exportedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// timestampFormats contains the timestamp formats SQLite may return,
// most specific first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a timestamp string trying multiple formats.
// Unparsable values yield the zero time rather than an error.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
