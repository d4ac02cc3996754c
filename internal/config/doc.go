// Package config loads, normalizes, and validates ccaviewer configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The defaults reproduce the classic viewer
// behavior exactly: magic header verification on, outputs in the working
// directory, and a blocking "press Enter" step before exit.
//
// Always obtain settings through this package so commands receive sanitized
// paths and clear validation errors.
package config
