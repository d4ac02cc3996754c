package editor

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Count returns the offsets of the non-overlapping occurrences of word.
func Count(content []byte, word []byte) ([]int, error) {
	if len(word) == 0 {
		return nil, ErrEmptySearch
	}
	var offsets []int
	pos := 0
	for {
		idx := bytes.Index(content[pos:], word)
		if idx < 0 {
			return offsets, nil
		}
		offsets = append(offsets, pos+idx)
		pos += idx + len(word)
	}
}

// ReplaceAll replaces every occurrence of old with replacement. The
// replacement may not be longer than old so the archive never grows.
func ReplaceAll(content, old, replacement []byte) ([]byte, int, error) {
	if len(old) == 0 {
		return nil, 0, ErrEmptySearch
	}
	if len(replacement) > len(old) {
		return nil, 0, fmt.Errorf("%w (%d > %d bytes)", ErrReplacementTooLong, len(replacement), len(old))
	}
	n := bytes.Count(content, old)
	if n == 0 {
		return nil, 0, ErrTextNotFound
	}
	return bytes.ReplaceAll(content, old, replacement), n, nil
}

// ParseHexOffset parses a hexadecimal offset, with or without a 0x prefix.
func ParseHexOffset(value string) (int64, error) {
	n, err := strconv.ParseUint(trimHexPrefix(value), 16, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, value)
	}
	return int64(n), nil
}

// ParseHexByte parses a single hexadecimal byte value.
func ParseHexByte(value string) (byte, error) {
	n, err := strconv.ParseUint(trimHexPrefix(value), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, value)
	}
	return byte(n), nil
}

func trimHexPrefix(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > 2 && value[0] == '0' && (value[1] == 'x' || value[1] == 'X') {
		return value[2:]
	}
	return value
}
