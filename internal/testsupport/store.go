package testsupport

import (
	"testing"

	"modcabinet/internal/cache"
	"modcabinet/internal/config"
)

// OpenStore opens the cache database at the configured path and closes it
// when the test finishes.
func OpenStore(t *testing.T, cfg *config.Config) *cache.Store {
	t.Helper()

	store, err := cache.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
