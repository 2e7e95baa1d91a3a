// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"mangasync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.AniList.Token = "test-token"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithToken sets the AniList token on the test config.
func WithToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.AniList.Token = token
	}
}

// WithBaseURL points the test config at a local server.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.AniList.BaseURL = url
	}
}
