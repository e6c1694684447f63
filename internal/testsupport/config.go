package testsupport

import (
	"path/filepath"
	"testing"

	"steamer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// SteamDB wait windows are shortened so resolver tests never sleep for real
// production durations.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.PluginDir = filepath.Join(base, "stplug-in")
	cfgVal.Paths.ArchiveDir = filepath.Join(base, "archive")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.RegistryPath = filepath.Join(base, "registry.db")
	cfgVal.SteamDB.PageLoadTimeout = 5
	cfgVal.SteamDB.ChallengeWait = 1
	cfgVal.SteamDB.TableWait = 1

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

// WithSteamRoot sets the Steam root override on the test config.
func WithSteamRoot(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Steam.Root = path
	}
}

// WithSteamDBBaseURL points the SteamDB client at a test server.
func WithSteamDBBaseURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SteamDB.BaseURL = baseURL
	}
}

// WithAutoApply toggles watch-mode auto apply on the test config.
func WithAutoApply(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.AutoApply = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ArchiveDir)
}
