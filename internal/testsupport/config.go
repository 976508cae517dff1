package testsupport

import (
	"path/filepath"
	"testing"

	"img2gif/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.HistoryDB = filepath.Join(base, "data", "history.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Engine.FFmpegBinary = "ffmpeg"
	cfgVal.Engine.FFprobeBinary = "ffprobe"
	cfgVal.Engine.LockTimeoutSeconds = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithFFmpeg points the engine at a specific ffmpeg binary.
func WithFFmpeg(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engine.FFmpegBinary = path
	}
}

// WithPreset appends a user preset to the test config.
func WithPreset(p config.Preset) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Presets = append(b.cfg.Presets, p)
	}
}

// WithMaxFileSizeMB overrides the per-input size limit.
func WithMaxFileSizeMB(mb int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Conversion.MaxFileSizeMB = mb
	}
}

// BaseDir returns the temp directory backing a config built by NewConfig.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
