// Package log provides a credential-masking slog handler.
//
// spacedump talks to authenticated wiki instances, so request metadata
// passing through the logger can contain basic-auth headers, API
// tokens, or proxy URLs with embedded passwords. SecureHandler wraps
// any slog.Handler and masks such values before they are written,
// matching on well-known attribute keys and value patterns.
package log
