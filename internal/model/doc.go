// Package model defines the core data types shared across spacedump:
// the remote wiki entities (Space, Page), the local path tree assembled
// during an export (PathEntry), and the per-run summary reported to the
// user (ExportSummary, SpaceSummary).
//
// Types in this package are plain values with no behavior beyond small
// accessors. They carry no references back to the client or exporter,
// which keeps them trivially serializable for reports and the manifest
// database.
package model
