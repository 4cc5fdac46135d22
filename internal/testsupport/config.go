// Package testsupport provides builders for configs and frame-file fixtures
// shared across package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/GusBusDraws/aps-directional/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithHistoryKeep overrides the history retention on the test config.
func WithHistoryKeep(keep int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Keep = keep
	}
}

// WithViewer overrides the viewer command on the test config.
func WithViewer(command string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tools.Viewer = command
	}
}
