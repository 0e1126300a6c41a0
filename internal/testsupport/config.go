package testsupport

import (
	"path/filepath"
	"testing"

	"creditmarker/internal/config"
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
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.ReportDir = filepath.Join(base, "reports")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = ""

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

// WithFPS sets the matcher frame rate, which keeps synthetic episodes short.
func WithFPS(fps int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.FPS = fps
	}
}

// WithSmoothing sets the smoothing window and the segmented series.
func WithSmoothing(window int, segmentOn string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Blocks.SmoothingWindow = window
		b.cfg.Blocks.SegmentOn = segmentOn
	}
}

// WithLogDir enables file logging under the temp root.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
