package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"modcabinet/internal/config"
)

// WriteRepoFile writes content under the mods checkout, creating parent
// directories as needed.
func WriteRepoFile(t *testing.T, cfg *config.Config, rel, content string) {
	t.Helper()

	path := filepath.Join(cfg.Mods.RepoDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ReadWikiPage returns the content of a generated wiki page.
func ReadWikiPage(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(cfg.Wiki.CabinetDir, name))
	if err != nil {
		t.Fatalf("read wiki page %s: %v", name, err)
	}
	return string(data)
}
