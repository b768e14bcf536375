package testsupport

import (
	"context"
	"testing"

	"pressline/internal/config"
	"pressline/internal/release"
	"pressline/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SourceOption customizes a seeded source release.
type SourceOption func(*release.Source)

// WithAssets attaches audio and cover references to a seeded source.
func WithAssets() SourceOption {
	return func(src *release.Source) {
		src.AudioRef = "assets/audio/master.wav"
		src.CoverRef = "assets/cover/artwork.jpg"
	}
}

// WithGenres sets the genre list on a seeded source.
func WithGenres(genres ...string) SourceOption {
	return func(src *release.Source) {
		src.Genres = genres
	}
}

// WithReleaseDate sets the release date on a seeded source.
func WithReleaseDate(date string) SourceOption {
	return func(src *release.Source) {
		src.ReleaseDate = date
	}
}

// WithUPC sets the universal product code on a seeded source.
func WithUPC(upc string) SourceOption {
	return func(src *release.Source) {
		src.UPC = upc
	}
}

// SeedSource inserts a source release for tests using the provided store.
func SeedSource(t testing.TB, st *store.Store, ownerID, title, artist string, opts ...SourceOption) *release.Source {
	t.Helper()

	src := &release.Source{
		OwnerID: ownerID,
		Title:   title,
		Artist:  artist,
		Type:    release.TypeSingle,
	}
	for _, opt := range opts {
		opt(src)
	}
	if err := st.InsertSource(context.Background(), src); err != nil {
		t.Fatalf("store.InsertSource: %v", err)
	}
	return src
}
