// Package main hosts the ccaviewer CLI entrypoint and command graph.
//
// The root command turns a .cca archive into a readable <stem>.txt plus a
// <stem>_debuginfo.txt sidecar. Subcommands expose the archive editor
// (hexdump, strings, count, replace, patch, info) and configuration
// scaffolding. Configuration resolution and logger construction live here so
// the internal packages stay free of CLI concerns.
package main
