package testsupport

import (
	"path/filepath"
	"testing"

	"vibeandbuild/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.PublicDir = filepath.Join(base, "public")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAdminPassword overrides the admin gate secret on the test config.
func WithAdminPassword(password string) ConfigOption {
	return func(c *config.Config) {
		c.Admin.Password = password
	}
}

// WithAPIToken sets the bearer token guarding the admin endpoints.
func WithAPIToken(token string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.APIToken = token
	}
}
