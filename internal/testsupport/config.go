package testsupport

import (
	"path/filepath"
	"testing"

	"videocatalog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The database is a SQLite file inside the temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Database.Path = filepath.Join(base, "data", "catalog.db")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRecreateOnOpen makes the store drop and recreate its tables on open.
func WithRecreateOnOpen() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Database.RecreateOnOpen = true
	}
}
