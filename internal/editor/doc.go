// Package editor inspects and patches CCA archives in memory.
//
// An Archive is loaded whole, edited through byte-level operations that never
// grow the file past what a replacement of equal or shorter length allows,
// and written back atomically while holding an advisory lock. The read-only
// views (hex dump, string listing, occurrence search) work on plain byte
// slices so callers can use them without an Archive.
package editor
