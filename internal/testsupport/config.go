package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mediasweep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Both services get an API key and an existing, empty media root; the results
// file lives in the same temp tree.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Radarr.APIKey = "test"
	cfgVal.Radarr.MediaDir = filepath.Join(base, "movies")
	cfgVal.Sonarr.APIKey = "test"
	cfgVal.Sonarr.MediaDir = filepath.Join(base, "series")
	cfgVal.Report.ResultsFile = filepath.Join(base, "orphaned_files.txt")

	for _, dir := range []string{cfgVal.Radarr.MediaDir, cfgVal.Sonarr.MediaDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir media dir: %v", err)
		}
	}

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

// WithServiceURL points the named service ("radarr" or "sonarr") at url.
func WithServiceURL(name, url string) ConfigOption {
	return func(b *configBuilder) {
		svc, err := b.cfg.Service(name)
		if err != nil {
			b.t.Fatalf("service %s: %v", name, err)
		}
		svc.URL = url
	}
}

// WithPrintLimit overrides the inline print limit.
func WithPrintLimit(limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.PrintLimit = limit
	}
}

// WriteConfigFile encodes cfg to a TOML file under a temp dir and returns its path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "mediasweep.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
