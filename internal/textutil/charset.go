package textutil

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrInvalidText reports bytes that are not valid in the selected charset.
var ErrInvalidText = errors.New("invalid text for charset")

// DefaultCharset is used when no charset is requested.
const DefaultCharset = "utf-8"

var charsets = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
}

// Charsets lists the accepted charset names, sorted.
func Charsets() []string {
	names := []string{DefaultCharset}
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decoder turns raw bytes into display text.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder resolves a charset by name. An empty name selects UTF-8.
func NewDecoder(name string) (*Decoder, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == DefaultCharset || key == "utf8" {
		return &Decoder{name: DefaultCharset}, nil
	}
	enc, ok := charsets[key]
	if !ok {
		return nil, fmt.Errorf("unsupported charset %q (choose from %s)", name, strings.Join(Charsets(), ", "))
	}
	return &Decoder{name: key, enc: enc}, nil
}

// Name returns the canonical charset name.
func (d *Decoder) Name() string { return d.name }

// IsUTF8 reports whether the decoder passes UTF-8 through unchanged.
func (d *Decoder) IsUTF8() bool { return d.enc == nil }

// Decode converts data to a Go string. UTF-8 input must be valid; single-byte
// code pages accept every byte.
func (d *Decoder) Decode(data []byte) (string, error) {
	if d.enc == nil {
		if !utf8.Valid(data) {
			return "", ErrInvalidText
		}
		return string(data), nil
	}
	out, err := d.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidText, err)
	}
	return string(out), nil
}

// KeepASCIIPrintable drops every rune outside ' '..'~'.
func KeepASCIIPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= ' ' && r <= '~' {
			return r
		}
		return -1
	}, s)
}

// KeepPrintable drops every rune unicode does not consider printable.
func KeepPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}
