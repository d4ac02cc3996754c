// Package cca extracts readable text from CCA game-asset archives.
//
// The archive is treated as an opaque byte stream: the only structure the
// package knows about is the optional "CCA Copyright MDO <n>" header at the
// start of the file. Extraction keeps every byte the C locale considers
// printable, drops everything else, and records the read offset just past the
// last byte it kept. A small debug sidecar captures when and by whom the text
// was produced.
//
// Service wires those pieces into the single-pass run the CLI exposes. The
// lower-level helpers (Filter, ReadMagic, DebugInfo) stay exported so the
// editor commands and tests can reuse them without touching the filesystem.
package cca
