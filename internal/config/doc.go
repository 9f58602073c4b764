// Package config manages spacedump configuration.
//
// Configuration comes from two places that merge in a fixed order:
// defaults from NewConfig, values from the YAML config file
// (.spacedump, see FindConfigFile for the search order), and finally
// CLI flag overrides applied by the command layer. Validate() runs once
// after merging and returns sentinel errors so callers can match
// specific problems with errors.Is().
package config
