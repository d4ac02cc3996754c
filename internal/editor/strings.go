package editor

import (
	"bytes"

	"ccaviewer/internal/textutil"
)

// Strings splits content on NUL bytes, decodes each run with dec, and keeps
// the printable part of every run that decodes cleanly. Runs that are invalid
// for the charset or empty after filtering are skipped. With the UTF-8
// decoder only ' '..'~' survive; other charsets keep every printable rune.
func Strings(content []byte, dec *textutil.Decoder) []string {
	if dec == nil {
		dec, _ = textutil.NewDecoder(textutil.DefaultCharset)
	}
	var out []string
	for _, run := range bytes.Split(content, []byte{0}) {
		decoded, err := dec.Decode(run)
		if err != nil {
			continue
		}
		var kept string
		if dec.IsUTF8() {
			kept = textutil.KeepASCIIPrintable(decoded)
		} else {
			kept = textutil.KeepPrintable(decoded)
		}
		if kept != "" {
			out = append(out, kept)
		}
	}
	return out
}
