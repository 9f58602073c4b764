// Package main provides the entry point for the spacedump CLI.
//
// spacedump mirrors a remote wiki instance into a self-contained local
// directory of linked HTML documents, one folder per space, excluding
// binary attachments.
//
// Usage:
//
//	spacedump export
//	spacedump pages
//
// See --help for all available options.
package main

// main is the entry point for spacedump.
func main() {
	Execute()
}
