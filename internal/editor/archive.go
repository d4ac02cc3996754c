package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"ccaviewer/internal/cca"
)

// Archive is a CCA archive loaded into memory for editing.
type Archive struct {
	Path    string
	Content []byte

	size    int64
	modTime time.Time
	dirty   bool
}

// Open reads the archive at path. Unlike extraction, the .cca extension is
// matched case-insensitively.
func Open(path string) (*Archive, error) {
	if _, ext := cca.SplitName(path); !strings.EqualFold(ext, cca.Extension) {
		return nil, cca.Wrap(cca.ErrNotCCAFile, path, nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, cca.Wrap(cca.ErrFileNotFound, path, err)
	}
	if info.IsDir() {
		return nil, cca.Wrap(cca.ErrFileNotFound, path, errors.New("is a directory"))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cca.Wrap(cca.ErrFileNotFound, path, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Archive{
		Path:    path,
		Content: content,
		size:    info.Size(),
		modTime: info.ModTime(),
	}, nil
}

// Size reports the in-memory content length.
func (a *Archive) Size() int64 { return int64(len(a.Content)) }

// Dirty reports whether the content has changed since Open or the last Save.
func (a *Archive) Dirty() bool { return a.dirty }

// Patch overwrites the byte at offset and returns the previous value.
func (a *Archive) Patch(offset int64, value byte) (byte, error) {
	if offset < 0 || offset >= int64(len(a.Content)) {
		return 0, fmt.Errorf("%w: 0x%X (size 0x%X)", ErrOffsetOutOfRange, offset, len(a.Content))
	}
	old := a.Content[offset]
	a.Content[offset] = value
	if old != value {
		a.dirty = true
	}
	return old, nil
}

// Replace substitutes every occurrence of old with replacement and returns
// the number of replacements.
func (a *Archive) Replace(old, replacement []byte) (int, error) {
	updated, n, err := ReplaceAll(a.Content, old, replacement)
	if err != nil {
		return 0, err
	}
	a.Content = updated
	a.dirty = true
	return n, nil
}
