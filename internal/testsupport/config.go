package testsupport

import (
	"path/filepath"
	"testing"

	"ccaviewer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config that writes outputs under a per-test temp
// directory and never blocks on terminal input.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Extract.OutputDir = filepath.Join(base, "out")
	cfgVal.Extract.Pause = config.PauseNever

	builder := &configBuilder{t: t, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithMagicCheck toggles the archive header check.
func WithMagicCheck(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extract.VerifyMagic = enabled
	}
}

// WithWorkingDirOutput clears the output directory so files land in the
// current working directory.
func WithWorkingDirOutput() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extract.OutputDir = ""
	}
}

// WithGames sets the supported games list.
func WithGames(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Games = b.cfg.Games[:0]
		for _, name := range names {
			b.cfg.Games = append(b.cfg.Games, config.Game{Name: name})
		}
	}
}

