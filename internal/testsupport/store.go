package testsupport

import (
	"testing"

	"vibeandbuild/internal/config"
	"vibeandbuild/internal/store"
)

// MustOpenStores opens the flat-file stores against a fresh temp config,
// failing the test on error.
func MustOpenStores(t testing.TB, opts ...ConfigOption) *store.Stores {
	t.Helper()
	stores, _ := MustOpenStoresWithConfig(t, opts...)
	return stores
}

// MustOpenStoresWithConfig also returns the config the stores were bound to,
// for tests that need the underlying directories.
func MustOpenStoresWithConfig(t testing.TB, opts ...ConfigOption) (*store.Stores, *config.Config) {
	t.Helper()
	cfg := NewConfig(t, opts...)
	stores, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open stores: %v", err)
	}
	return stores, cfg
}
