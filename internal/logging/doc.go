// Package logging assembles structured slog loggers and formatting helpers used
// across ccaviewer.
//
// It owns the console and JSON handlers, resolves output destinations, and
// exposes context-aware helpers so extraction and editor code can tag log
// lines with the run identifier and archive path. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Logs default to stderr. Stdout belongs to the user-facing messages the
// commands print, so nothing in this package writes there unless asked to.
package logging
