package cca

import (
	"path/filepath"
	"strings"
)

// Extension is the only file extension accepted for extraction.
const Extension = ".cca"

// SplitName splits the final path element into stem and extension. A leading
// dot belongs to the stem when it is the only dot, so ".cca" has stem ".cca"
// and no extension.
func SplitName(path string) (stem, ext string) {
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return name, ""
	}
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}

// HasArchiveExtension reports whether path ends in exactly ".cca".
func HasArchiveExtension(path string) bool {
	_, ext := SplitName(path)
	return ext == Extension
}

// OutputPaths returns the text and debug sidecar paths for the archive stem,
// rooted at dir. An empty dir keeps the paths relative to the working
// directory.
func OutputPaths(dir, archivePath string) (text, debug string) {
	stem, _ := SplitName(archivePath)
	text = stem + ".txt"
	debug = stem + "_debuginfo.txt"
	if dir != "" {
		text = filepath.Join(dir, text)
		debug = filepath.Join(dir, debug)
	}
	return text, debug
}
