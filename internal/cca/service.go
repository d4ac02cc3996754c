package cca

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ccaviewer/internal/config"
	"ccaviewer/internal/logging"
)

// Options configures a Service.
type Options struct {
	VerifyMagic bool
	MagicLength int
	// OutputDir receives the generated files; empty means the working directory.
	OutputDir string
	Username  UsernameFunc
	Now       func() time.Time
	Logger    *slog.Logger
}

// OptionsFromConfig maps the [extract] section onto service options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{VerifyMagic: true, MagicLength: MagicLength}
	if cfg == nil {
		return opts
	}
	opts.VerifyMagic = cfg.Extract.VerifyMagic
	opts.MagicLength = cfg.Extract.MagicLength
	opts.OutputDir = cfg.Extract.OutputDir
	return opts
}

// Report describes a completed extraction.
type Report struct {
	Archive   string
	TextPath  string
	DebugPath string
	// Header is nil when magic verification is disabled.
	Header    *Header
	Filter    FilterResult
	CreatedAt time.Time
	Username  string
}

// Service runs the archive-to-text extraction.
type Service struct {
	opts   Options
	logger *slog.Logger
}

// NewService constructs a Service, filling unset hooks with host defaults.
func NewService(opts Options) *Service {
	if opts.Username == nil {
		opts.Username = CurrentUsername
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MagicLength <= 0 {
		opts.MagicLength = MagicLength
	}
	return &Service{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "extractor"),
	}
}

// Run extracts the printable text of the archive at path into <stem>.txt and
// writes <stem>_debuginfo.txt. Validation failures leave the filesystem
// untouched; a debug sidecar failure leaves the text output in place.
func (s *Service) Run(ctx context.Context, path string) (Report, error) {
	ctx = logging.WithArchive(ctx, path)
	logger := logging.WithContext(ctx, s.logger)
	report := Report{Archive: path, CreatedAt: s.opts.Now()}

	if !HasArchiveExtension(path) {
		return report, Wrap(ErrNotCCAFile, path, nil)
	}

	input, err := openArchive(path)
	if err != nil {
		return report, Wrap(ErrFileNotFound, path, err)
	}
	defer input.Close()

	if s.opts.VerifyMagic {
		header, err := ReadMagic(input, s.opts.MagicLength)
		if err != nil {
			return report, Wrap(ErrInvalidMagic, path, err)
		}
		report.Header = &header
		logger.Debug("archive header accepted", logging.Args(logging.Int64("header_number", header.Number))...)
	}
	if _, err := input.Seek(0, io.SeekStart); err != nil {
		return report, fmt.Errorf("rewind %s: %w", path, err)
	}

	textPath, debugPath := OutputPaths(s.opts.OutputDir, path)
	if s.opts.OutputDir != "" {
		if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
			return report, Wrap(ErrOutputCreate, s.opts.OutputDir, err)
		}
	}

	output, err := os.Create(textPath)
	if err != nil {
		return report, Wrap(ErrOutputCreate, textPath, err)
	}
	result, err := Filter(ctx, input, output)
	closeErr := output.Close()
	report.Filter = result
	if err != nil {
		return report, fmt.Errorf("extract %s: %w", path, err)
	}
	if closeErr != nil {
		return report, Wrap(ErrOutputCreate, textPath, closeErr)
	}
	report.TextPath = absolute(textPath)
	logger.Debug("text extracted", logging.Args(
		logging.String("output", report.TextPath),
		logging.Int64("bytes_read", result.BytesRead),
		logging.Int64("bytes_written", result.BytesWritten),
		logging.Int64(logging.FieldOffset, result.Offset),
	)...)

	if name, ok := s.opts.Username(); ok {
		report.Username = name
	}
	info := DebugInfo{
		Stem:      stemOf(path),
		CreatedAt: report.CreatedAt,
		Username:  report.Username,
		Offset:    result.Offset,
	}
	if err := writeDebugInfo(debugPath, info); err != nil {
		logger.Warn("debug sidecar not written; text output kept", logging.Args(logging.Error(err))...)
		return report, err
	}
	report.DebugPath = absolute(debugPath)
	return report, nil
}

func openArchive(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, errors.New("is a directory")
	}
	return file, nil
}

func writeDebugInfo(path string, info DebugInfo) error {
	file, err := os.Create(path)
	if err != nil {
		return Wrap(ErrDebugCreate, path, err)
	}
	if _, err := info.WriteTo(file); err != nil {
		file.Close()
		return Wrap(ErrDebugCreate, path, err)
	}
	if err := file.Close(); err != nil {
		return Wrap(ErrDebugCreate, path, err)
	}
	return nil
}

func stemOf(path string) string {
	stem, _ := SplitName(path)
	return stem
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
