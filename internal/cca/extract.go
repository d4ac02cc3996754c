package cca

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

const filterBufferSize = 32 * 1024

// FilterResult summarizes one pass over an archive.
type FilterResult struct {
	// Offset is the read position just after the last printable byte, or 0
	// when none was seen.
	Offset int64
	// BytesRead counts every byte consumed from the input.
	BytesRead int64
	// BytesWritten counts the printable bytes forwarded to the output.
	BytesWritten int64
}

// Filter copies the printable bytes of r to w in order, dropping everything
// else without substitution. ctx is checked between buffered reads.
func Filter(ctx context.Context, r io.Reader, w io.Writer) (FilterResult, error) {
	var result FilterResult

	out := bufio.NewWriterSize(w, filterBufferSize)
	buf := make([]byte, filterBufferSize)
	kept := make([]byte, 0, filterBufferSize)

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		n, readErr := r.Read(buf)
		if n > 0 {
			kept = kept[:0]
			for i, b := range buf[:n] {
				if !IsPrint(b) {
					continue
				}
				kept = append(kept, b)
				result.Offset = result.BytesRead + int64(i) + 1
			}
			result.BytesRead += int64(n)
			if len(kept) > 0 {
				if _, err := out.Write(kept); err != nil {
					return result, fmt.Errorf("write text: %w", err)
				}
				result.BytesWritten += int64(len(kept))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return result, fmt.Errorf("read archive: %w", readErr)
		}
	}

	if err := out.Flush(); err != nil {
		return result, fmt.Errorf("write text: %w", err)
	}
	return result, nil
}
