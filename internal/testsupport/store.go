package testsupport

import (
	"context"
	"testing"

	"videocatalog/internal/catalog"
	"videocatalog/internal/config"
	"videocatalog/internal/logging"
	"videocatalog/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// NewVideo returns a valid video with a fixed title and no artwork or media.
func NewVideo(t testing.TB, title string) *catalog.Video {
	t.Helper()

	return catalog.NewVideo(title, "description of "+title, 2020, false, true, 120, catalog.Rating14)
}

// MustSave persists video in its own unit of work.
func MustSave(t testing.TB, st *store.Store, video *catalog.Video) {
	t.Helper()

	err := st.Do(context.Background(), func(u *store.Unit) error {
		return u.Save(context.Background(), video)
	})
	if err != nil {
		t.Fatalf("save video: %v", err)
	}
}
