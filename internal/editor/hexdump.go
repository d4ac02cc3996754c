package editor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	bytesPerRow = 16
	hexColumn   = bytesPerRow * 3

	hexdumpHeader = "Offset     | Hexadecimal Representation | Printable Text"
	hexdumpRule   = "----------------------------------------------------------"
)

// Hexdump writes content as rows of sixteen bytes: a ten-digit uppercase hex
// offset, the bytes in uppercase hex, and their printable rendering with '.'
// standing in for anything outside ' '..'~'.
func Hexdump(w io.Writer, content []byte) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, hexdumpHeader)
	fmt.Fprintln(bw, hexdumpRule)

	var hex, text strings.Builder
	for start := 0; start < len(content); start += bytesPerRow {
		end := min(start+bytesPerRow, len(content))
		hex.Reset()
		text.Reset()
		for i, b := range content[start:end] {
			if i > 0 {
				hex.WriteByte(' ')
			}
			fmt.Fprintf(&hex, "%02X", b)
			if b >= 32 && b <= 126 {
				text.WriteByte(b)
			} else {
				text.WriteByte('.')
			}
		}
		fmt.Fprintf(bw, "%010X | %-*s | %s\n", start, hexColumn, hex.String(), text.String())
	}
	return bw.Flush()
}
