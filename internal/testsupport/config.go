// Package testsupport provides shared helpers for tests that need a
// configured workspace with mods and wiki checkouts plus a cache store.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"modcabinet/internal/config"
)

// NewConfig returns a configuration rooted in a fresh temp directory with
// git operations disabled, suitable for exercising a full run offline.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Mods.RepoDir = filepath.Join(base, "mods")
	cfg.Mods.BaseURL = "https://example.com/blob/master"
	cfg.Mods.DownloadURL = "https://example.com/raw/master"
	cfg.Wiki.CabinetDir = filepath.Join(base, "wiki")
	cfg.Cache.Dir = filepath.Join(base, "cache")
	cfg.Logging.LogDir = filepath.Join(base, "logs")
	cfg.Git.Enabled = false
	cfg.Git.Commit = false

	for _, dir := range []string{cfg.Mods.RepoDir, cfg.Wiki.CabinetDir, cfg.Cache.Dir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create %s: %v", dir, err)
		}
	}
	return &cfg
}
