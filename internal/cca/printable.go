package cca

// IsPrint reports whether b is printable in the C locale: the space character
// and the visible ASCII range. Control bytes and everything with the high bit
// set are rejected.
func IsPrint(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}
