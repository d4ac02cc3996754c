package cca

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// MagicPattern is the scanf-style template the header must match.
	MagicPattern = "CCA Copyright MDO %d"
	// MagicLength is the number of leading bytes inspected by default.
	MagicLength = 25

	magicLiteral = "CCA Copyright MDO "
)

// Header is the result of sniffing the start of an archive.
type Header struct {
	Raw []byte
	// Number is the integer following the copyright literal. Nothing consumes
	// it beyond the parse itself.
	Number int64
}

// ReadMagic reads up to n bytes from r and matches them against
// MagicPattern. Short archives are matched against whatever was read.
func ReadMagic(r io.Reader, n int) (Header, error) {
	if n <= 0 {
		n = MagicLength
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Header{}, fmt.Errorf("read header: %w", err)
	}
	header := Header{Raw: buf[:read]}
	number, ok := ParseMagic(header.Raw)
	if !ok {
		return header, fmt.Errorf("header %q does not match %q", printableRaw(header.Raw), MagicPattern)
	}
	header.Number = number
	return header, nil
}

// ParseMagic matches header with sscanf rules: the header ends at the first
// NUL byte, each space in the literal matches any run of whitespace
// (including none), and the number may carry leading whitespace and a sign.
// Out-of-range numbers saturate.
func ParseMagic(header []byte) (int64, bool) {
	if idx := bytes.IndexByte(header, 0); idx >= 0 {
		header = header[:idx]
	}

	pos := 0
	for i := 0; i < len(magicLiteral); i++ {
		want := magicLiteral[i]
		if want == ' ' {
			pos = skipSpace(header, pos)
			continue
		}
		if pos >= len(header) || header[pos] != want {
			return 0, false
		}
		pos++
	}

	pos = skipSpace(header, pos)
	start := pos
	if pos < len(header) && (header[pos] == '+' || header[pos] == '-') {
		pos++
	}
	digits := pos
	for pos < len(header) && header[pos] >= '0' && header[pos] <= '9' {
		pos++
	}
	if pos == digits {
		return 0, false
	}

	number, err := strconv.ParseInt(string(header[start:pos]), 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return number, true
}

func skipSpace(b []byte, pos int) int {
	for pos < len(b) {
		switch b[pos] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func printableRaw(raw []byte) string {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if IsPrint(b) {
			out = append(out, b)
		} else {
			out = append(out, '.')
		}
	}
	return string(out)
}
