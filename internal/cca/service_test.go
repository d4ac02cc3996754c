package cca_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"ccaviewer/internal/cca"
	"ccaviewer/internal/testsupport"
)

var fixedNow = time.Date(2024, 5, 17, 14, 3, 9, 0, time.Local)

func newService(outDir string, verifyMagic bool, username cca.UsernameFunc) *cca.Service {
	return cca.NewService(cca.Options{
		VerifyMagic: verifyMagic,
		OutputDir:   outDir,
		Username:    username,
		Now:         func() time.Time { return fixedNow },
	})
}

func fixedUser(name string) cca.UsernameFunc {
	return func() (string, bool) { return name, true }
}

func TestRunSpecExampleWithoutMagic(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	archive := filepath.Join(dir, "example.cca")
	testsupport.WriteFile(t, archive, []byte{0x43, 0x43, 0x41, 0x20, 0x01, 0x42})

	report, err := newService(outDir, false, cca.NoUsername).Run(context.Background(), archive)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := string(testsupport.ReadFile(t, filepath.Join(outDir, "example.txt"))); got != "CCA B" {
		t.Fatalf("unexpected text %q", got)
	}
	debug := string(testsupport.ReadFile(t, filepath.Join(outDir, "example_debuginfo.txt")))
	want := "Debug Infos:\n" +
		"Output of example.cca created at 2024-05-17 14:03:09\n" +
		"Offset (hex): 0x6 hex\n" +
		"Offset (bytes): 6 bytes\n"
	if debug != want {
		t.Fatalf("unexpected debug sidecar:\n%s", debug)
	}
	if report.Header != nil {
		t.Fatal("header should be nil when magic verification is off")
	}
	if report.TextPath != filepath.Join(outDir, "example.txt") {
		t.Fatalf("unexpected text path %q", report.TextPath)
	}
}

func TestRunSpecExampleWithMagicPrefix(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	archive := testsupport.WriteArchive(t, dir, "example.cca", []byte{0x43, 0x43, 0x41, 0x20, 0x01, 0x42})

	report, err := newService(outDir, true, fixedUser("player1")).Run(context.Background(), archive)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := string(testsupport.ReadFile(t, filepath.Join(outDir, "example.txt"))); got != testsupport.ValidMagic+"CCA B" {
		t.Fatalf("unexpected text %q", got)
	}
	debug := string(testsupport.ReadFile(t, filepath.Join(outDir, "example_debuginfo.txt")))
	for _, line := range []string{"Created by player1\n", "Offset (hex): 0x1f hex\n", "Offset (bytes): 31 bytes\n"} {
		if !strings.Contains(debug, line) {
			t.Fatalf("expected %q in sidecar:\n%s", line, debug)
		}
	}
	if report.Header == nil || report.Header.Number != 1234567 {
		t.Fatalf("unexpected header %+v", report.Header)
	}
	if report.Username != "player1" {
		t.Fatalf("unexpected username %q", report.Username)
	}
}

func TestRunWritesToWorkingDirectoryByDefault(t *testing.T) {
	archiveDir := t.TempDir()
	archive := testsupport.WriteArchive(t, archiveDir, "level.cca", []byte("hello"))
	workDir := t.TempDir()
	t.Chdir(workDir)

	report, err := newService("", true, cca.NoUsername).Run(context.Background(), archive)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := testsupport.ListFiles(t, workDir); !slices.Equal(got, []string{"level.txt", "level_debuginfo.txt"}) {
		t.Fatalf("unexpected files in working dir: %v", got)
	}
	if filepath.Base(report.TextPath) != "level.txt" || !filepath.IsAbs(report.TextPath) {
		t.Fatalf("expected absolute text path, got %q", report.TextPath)
	}
	if got := testsupport.ListFiles(t, archiveDir); !slices.Equal(got, []string{"level.cca"}) {
		t.Fatalf("archive directory should be untouched, got %v", got)
	}
}

func TestRunFailuresCreateNoOutputs(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, dir string) string
		marker error
	}{
		{
			name: "wrong extension",
			setup: func(t *testing.T, dir string) string {
				return testsupport.WriteArchive(t, dir, "notes.txt", []byte("abc"))
			},
			marker: cca.ErrNotCCAFile,
		},
		{
			name: "uppercase extension",
			setup: func(t *testing.T, dir string) string {
				return testsupport.WriteArchive(t, dir, "LOUD.CCA", []byte("abc"))
			},
			marker: cca.ErrNotCCAFile,
		},
		{
			name: "missing file",
			setup: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "absent.cca")
			},
			marker: cca.ErrFileNotFound,
		},
		{
			name: "directory",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "folder.cca")
				if err := os.Mkdir(path, 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				return path
			},
			marker: cca.ErrFileNotFound,
		},
		{
			name: "bad magic",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "bad.cca")
				testsupport.WriteFile(t, path, []byte("CCA Copyright MDO xyz and more bytes"))
				return path
			},
			marker: cca.ErrInvalidMagic,
		},
		{
			name: "too short for magic",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "short.cca")
				testsupport.WriteFile(t, path, []byte{0x43, 0x43, 0x41, 0x20, 0x01, 0x42})
				return path
			},
			marker: cca.ErrInvalidMagic,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			archive := tc.setup(t, dir)
			workDir := t.TempDir()
			t.Chdir(workDir)
			before := testsupport.ListFiles(t, dir)

			_, err := newService("", true, cca.NoUsername).Run(context.Background(), archive)
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
			if got := testsupport.ListFiles(t, workDir); len(got) != 0 {
				t.Fatalf("expected no outputs, got %v", got)
			}
			if got := testsupport.ListFiles(t, dir); !slices.Equal(got, before) {
				t.Fatalf("archive directory changed: %v -> %v", before, got)
			}
		})
	}
}

func TestRunAcceptsAnyHeaderNumber(t *testing.T) {
	for _, header := range []string{"CCA Copyright MDO 0", "CCA Copyright MDO -1", "CCA Copyright MDO 99999"} {
		dir := t.TempDir()
		archive := filepath.Join(dir, "n.cca")
		testsupport.WriteFile(t, archive, []byte(header+"\x00payload"))

		if _, err := newService(filepath.Join(dir, "out"), true, cca.NoUsername).Run(context.Background(), archive); err != nil {
			t.Fatalf("header %q rejected: %v", header, err)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	body := []byte("\x00\x01Hallo Welt\x02\x03\xffEnde\x00")
	archive := testsupport.WriteArchive(t, dir, "script.cca", body)

	svc := newService(outDir, true, cca.NoUsername)
	if _, err := svc.Run(context.Background(), archive); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := testsupport.ReadFile(t, filepath.Join(outDir, "script.txt"))
	if _, err := svc.Run(context.Background(), archive); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := testsupport.ReadFile(t, filepath.Join(outDir, "script.txt"))
	if string(first) != string(second) {
		t.Fatalf("outputs differ: %q vs %q", first, second)
	}
	if string(first) != testsupport.ValidMagic+"Hallo WeltEnde" {
		t.Fatalf("unexpected text %q", first)
	}
}

func TestRunDebugFailureKeepsText(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	archive := testsupport.WriteArchive(t, dir, "keep.cca", []byte("text"))
	if err := os.MkdirAll(filepath.Join(outDir, "keep_debuginfo.txt"), 0o755); err != nil {
		t.Fatalf("mkdir blocker: %v", err)
	}

	report, err := newService(outDir, true, cca.NoUsername).Run(context.Background(), archive)
	if !errors.Is(err, cca.ErrDebugCreate) {
		t.Fatalf("expected ErrDebugCreate, got %v", err)
	}
	if got := string(testsupport.ReadFile(t, filepath.Join(outDir, "keep.txt"))); got != testsupport.ValidMagic+"text" {
		t.Fatalf("text output should be kept, got %q", got)
	}
	if report.DebugPath != "" {
		t.Fatalf("debug path should be empty on failure, got %q", report.DebugPath)
	}
}

func TestRunOutputCreateFailure(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	archive := testsupport.WriteArchive(t, dir, "blocked.cca", []byte("text"))
	if err := os.MkdirAll(filepath.Join(outDir, "blocked.txt"), 0o755); err != nil {
		t.Fatalf("mkdir blocker: %v", err)
	}

	_, err := newService(outDir, true, cca.NoUsername).Run(context.Background(), archive)
	if !errors.Is(err, cca.ErrOutputCreate) {
		t.Fatalf("expected ErrOutputCreate, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(outDir, "blocked_debuginfo.txt")); !os.IsNotExist(statErr) {
		t.Fatalf("debug sidecar should not exist, stat err = %v", statErr)
	}
}

func TestErrorMessagesNameThePath(t *testing.T) {
	_, err := newService(t.TempDir(), true, cca.NoUsername).Run(context.Background(), "readme.md")
	if err == nil || !strings.Contains(err.Error(), "readme.md") {
		t.Fatalf("expected path in error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), cca.ErrNotCCAFile.Error()) {
		t.Fatalf("expected sentinel message prefix, got %q", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMagicCheck(false))
	dir := t.TempDir()
	archive := filepath.Join(dir, "plain.cca")
	testsupport.WriteFile(t, archive, []byte("no header\x00here"))

	opts := cca.OptionsFromConfig(cfg)
	if opts.VerifyMagic || opts.MagicLength != cca.MagicLength || opts.OutputDir != cfg.Extract.OutputDir {
		t.Fatalf("unexpected options %+v", opts)
	}
	opts.Username = cca.NoUsername
	opts.Now = func() time.Time { return fixedNow }

	report, err := cca.NewService(opts).Run(context.Background(), archive)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := string(testsupport.ReadFile(t, report.TextPath)); got != "no headerhere" {
		t.Fatalf("unexpected text %q", got)
	}
	if filepath.Dir(report.TextPath) != cfg.Extract.OutputDir {
		t.Fatalf("expected output under %s, got %s", cfg.Extract.OutputDir, report.TextPath)
	}
}

func TestOptionsFromConfigWorkingDirOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithWorkingDirOutput())
	opts := cca.OptionsFromConfig(cfg)
	if opts.OutputDir != "" || !opts.VerifyMagic {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts := cca.OptionsFromConfig(nil); !opts.VerifyMagic || opts.MagicLength != cca.MagicLength {
		t.Fatalf("nil config should yield defaults, got %+v", opts)
	}
}
