package cca

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TimestampLayout renders debug timestamps as YYYY-MM-DD HH:MM:SS.
const TimestampLayout = "2006-01-02 15:04:05"

// DebugInfo is the sidecar record written next to the extracted text.
type DebugInfo struct {
	Stem      string
	CreatedAt time.Time
	// Username is omitted from the output when empty.
	Username string
	Offset   int64
}

// WriteTo renders the record in the fixed sidecar layout.
func (d DebugInfo) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString("Debug Infos:\n")
	fmt.Fprintf(&b, "Output of %s%s created at %s\n", d.Stem, Extension, d.CreatedAt.Local().Format(TimestampLayout))
	if d.Username != "" {
		fmt.Fprintf(&b, "Created by %s\n", d.Username)
	}
	fmt.Fprintf(&b, "Offset (hex): 0x%x hex\n", d.Offset)
	fmt.Fprintf(&b, "Offset (bytes): %d bytes\n", d.Offset)

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
