package testsupport

import (
	"testing"

	"img2gif/internal/config"
	"img2gif/internal/history"
)

// MustOpenHistory opens the history database configured in cfg and closes it
// when the test finishes.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
