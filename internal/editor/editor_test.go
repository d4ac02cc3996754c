package editor_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"ccaviewer/internal/cca"
	"ccaviewer/internal/editor"
	"ccaviewer/internal/testsupport"
	"ccaviewer/internal/textutil"
)

func TestHexdumpFormatsRows(t *testing.T) {
	content := append([]byte("0123456789ABCDEF"), 'x', 0x00, 0x7f)
	var buf bytes.Buffer
	if err := editor.Hexdump(&buf, content); err != nil {
		t.Fatalf("Hexdump returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and two rows, got %q", lines)
	}
	if lines[0] != "Offset     | Hexadecimal Representation | Printable Text" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != strings.Repeat("-", 58) {
		t.Fatalf("unexpected rule %q", lines[1])
	}
	wantFirst := "0000000000 | 30 31 32 33 34 35 36 37 38 39 41 42 43 44 45 46  | 0123456789ABCDEF"
	if lines[2] != wantFirst {
		t.Fatalf("unexpected first row:\n got %q\nwant %q", lines[2], wantFirst)
	}
	wantSecond := "0000000010 | " + "78 00 7F" + strings.Repeat(" ", 48-8) + " | x.."
	if lines[3] != wantSecond {
		t.Fatalf("unexpected second row:\n got %q\nwant %q", lines[3], wantSecond)
	}
}

func TestHexdumpEmptyContent(t *testing.T) {
	var buf bytes.Buffer
	if err := editor.Hexdump(&buf, nil); err != nil {
		t.Fatalf("Hexdump returned error: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("expected only header lines, got %q", buf.String())
	}
}

func TestStringsSplitsOnNUL(t *testing.T) {
	content := []byte("Hallo\x00\x00Welt\x01!\x00\xff\xfe\x00\x02\x03")
	got := editor.Strings(content, nil)
	if !slices.Equal(got, []string{"Hallo", "Welt!"}) {
		t.Fatalf("unexpected strings %q", got)
	}
}

func TestStringsWithCodePage(t *testing.T) {
	dec, err := textutil.NewDecoder("windows-1252")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}
	got := editor.Strings([]byte("Gr\xfc\xdfe\x00\x01"), dec)
	if !slices.Equal(got, []string{"Grüße"}) {
		t.Fatalf("unexpected strings %q", got)
	}
}

func TestCountFindsNonOverlappingOffsets(t *testing.T) {
	got, err := editor.Count([]byte("aaaa-aa"), []byte("aa"))
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if !slices.Equal(got, []int{0, 2, 5}) {
		t.Fatalf("unexpected offsets %v", got)
	}
	if _, err := editor.Count([]byte("abc"), nil); !errors.Is(err, editor.ErrEmptySearch) {
		t.Fatalf("expected ErrEmptySearch, got %v", err)
	}
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name    string
		content string
		old     string
		repl    string
		want    string
		count   int
		wantErr error
	}{
		{name: "same length", content: "Hello Hello", old: "Hello", repl: "Hallo", want: "Hallo Hallo", count: 2},
		{name: "shorter", content: "abc-abc", old: "abc", repl: "x", want: "x-x", count: 2},
		{name: "too long", content: "abc", old: "abc", repl: "abcd", wantErr: editor.ErrReplacementTooLong},
		{name: "missing", content: "abc", old: "zz", repl: "y", wantErr: editor.ErrTextNotFound},
		{name: "empty", content: "abc", old: "", repl: "", wantErr: editor.ErrEmptySearch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := editor.ReplaceAll([]byte(tc.content), []byte(tc.old), []byte(tc.repl))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReplaceAll returned error: %v", err)
			}
			if string(got) != tc.want || n != tc.count {
				t.Fatalf("got %q (%d), want %q (%d)", got, n, tc.want, tc.count)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	for input, want := range map[string]int64{"0x1F": 31, "1f": 31, " 0X10 ": 16, "0": 0} {
		got, err := editor.ParseHexOffset(input)
		if err != nil || got != want {
			t.Fatalf("ParseHexOffset(%q) = %d, %v; want %d", input, got, err, want)
		}
	}
	for _, input := range []string{"", "0x", "zz", "-1"} {
		if _, err := editor.ParseHexOffset(input); !errors.Is(err, editor.ErrInvalidHex) {
			t.Fatalf("ParseHexOffset(%q) expected ErrInvalidHex, got %v", input, err)
		}
	}
	if b, err := editor.ParseHexByte("0xff"); err != nil || b != 0xff {
		t.Fatalf("ParseHexByte(0xff) = %x, %v", b, err)
	}
	if _, err := editor.ParseHexByte("100"); !errors.Is(err, editor.ErrInvalidHex) {
		t.Fatalf("expected ErrInvalidHex for 100, got %v", err)
	}
}

func TestOpenValidatesPath(t *testing.T) {
	dir := t.TempDir()
	upper := filepath.Join(dir, "LEVEL.CCA")
	testsupport.WriteFile(t, upper, []byte("data"))
	archive, err := editor.Open(upper)
	if err != nil {
		t.Fatalf("Open should accept uppercase extension: %v", err)
	}
	if archive.Size() != 4 || archive.Dirty() {
		t.Fatalf("unexpected archive state: size=%d dirty=%v", archive.Size(), archive.Dirty())
	}

	if _, err := editor.Open(filepath.Join(dir, "notes.txt")); !errors.Is(err, cca.ErrNotCCAFile) {
		t.Fatalf("expected ErrNotCCAFile, got %v", err)
	}
	if _, err := editor.Open(filepath.Join(dir, "absent.cca")); !errors.Is(err, cca.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestPatchAndSave(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteArchive(t, dir, "patch.cca", []byte("abc"))
	archive, err := editor.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	offset := int64(len(testsupport.ValidMagic))
	old, err := archive.Patch(offset, 'X')
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}
	if old != 'a' || !archive.Dirty() {
		t.Fatalf("unexpected patch result old=%q dirty=%v", old, archive.Dirty())
	}
	if _, err := archive.Patch(archive.Size(), 0); !errors.Is(err, editor.ErrOffsetOutOfRange) {
		t.Fatalf("expected ErrOffsetOutOfRange, got %v", err)
	}

	if err := archive.Save(context.Background(), editor.SaveOptions{Backup: true, LockTimeout: time.Second}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := string(testsupport.ReadFile(t, path)); got != testsupport.ValidMagic+"Xbc" {
		t.Fatalf("unexpected saved content %q", got)
	}
	if got := string(testsupport.ReadFile(t, editor.BackupPath(path))); got != testsupport.ValidMagic+"abc" {
		t.Fatalf("unexpected backup content %q", got)
	}
	if archive.Dirty() {
		t.Fatal("archive should be clean after save")
	}
}

func TestReplaceAndSaveWithoutBackup(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteArchive(t, dir, "text.cca", []byte("Hello\x00Hello"))
	archive, err := editor.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	n, err := archive.Replace([]byte("Hello"), []byte("Hi"))
	if err != nil || n != 2 {
		t.Fatalf("Replace = %d, %v", n, err)
	}
	if err := archive.Save(context.Background(), editor.SaveOptions{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := string(testsupport.ReadFile(t, path)); got != testsupport.ValidMagic+"Hi\x00Hi" {
		t.Fatalf("unexpected saved content %q", got)
	}
	if _, err := os.Stat(editor.BackupPath(path)); !os.IsNotExist(err) {
		t.Fatalf("backup should not exist, stat err = %v", err)
	}
}

func TestSaveRefusesWhenLocked(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteArchive(t, dir, "busy.cca", []byte("abc"))
	archive, err := editor.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	holder := flock.New(editor.LockPath(path))
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("hold lock: ok=%v err=%v", ok, err)
	}
	t.Cleanup(func() { _ = holder.Unlock() })

	err = archive.Save(context.Background(), editor.SaveOptions{LockTimeout: 200 * time.Millisecond})
	if !errors.Is(err, editor.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if got := string(testsupport.ReadFile(t, path)); got != testsupport.ValidMagic+"abc" {
		t.Fatalf("archive should be untouched, got %q", got)
	}
}

func TestSaveDetectsConcurrentChange(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteArchive(t, dir, "race.cca", []byte("abc"))
	archive, err := editor.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	testsupport.WriteFile(t, path, []byte("someone else wrote this"))

	if err := archive.Save(context.Background(), editor.SaveOptions{}); !errors.Is(err, editor.ErrConcurrentlyChanged) {
		t.Fatalf("expected ErrConcurrentlyChanged, got %v", err)
	}
}
