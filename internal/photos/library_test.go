package photos

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func TestPhotosBetweenIsHalfOpen(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	photos := map[string]string{
		"before.jpg":   "2024-05-31T10:00:00Z",
		"on-start.jpg": "2024-06-01T00:00:00Z",
		"inside.jpg":   "2024-06-02T15:30:00Z",
		"on-end.jpg":   "2024-06-04T00:00:00Z",
	}
	for path, ts := range photos {
		if err := lib.AddPhoto(ctx, path, day(t, ts)); err != nil {
			t.Fatalf("add %s: %v", path, err)
		}
	}

	got, err := lib.PhotosBetween(ctx, day(t, "2024-06-01T00:00:00Z"), day(t, "2024-06-04T00:00:00Z"))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(got))
	}
	// Lower bound included, upper bound excluded, ordered oldest first.
	if got[0].Path != "on-start.jpg" || got[1].Path != "inside.jpg" {
		t.Errorf("photos = %q, %q", got[0].Path, got[1].Path)
	}
}

func TestAddPhotoIgnoresKnownPath(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	ts := day(t, "2024-06-02T12:00:00Z")
	if err := lib.AddPhoto(ctx, "a.jpg", ts); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := lib.AddPhoto(ctx, "a.jpg", ts); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	got, err := lib.PhotosBetween(ctx, ts.Add(-time.Hour), ts.Add(time.Hour))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 photo, got %d", len(got))
	}
}

func TestEnsureAlbumIsIdempotent(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	first, err := lib.EnsureAlbum(ctx, "Trips", "Paris - 2024-06-01 to 2024-06-03")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	second, err := lib.EnsureAlbum(ctx, "Trips", "Paris - 2024-06-01 to 2024-06-03")
	if err != nil {
		t.Fatalf("re-ensure: %v", err)
	}
	if first != second {
		t.Errorf("album ids differ: %d and %d", first, second)
	}

	other, err := lib.EnsureAlbum(ctx, "Other", "Paris - 2024-06-01 to 2024-06-03")
	if err != nil {
		t.Fatalf("ensure other folder: %v", err)
	}
	if other == first {
		t.Error("same name in a different folder should be a different album")
	}
}

func TestAddToAlbumKeepsExistingLinks(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	ts := day(t, "2024-06-02T12:00:00Z")
	for _, p := range []string{"a.jpg", "b.jpg"} {
		if err := lib.AddPhoto(ctx, p, ts); err != nil {
			t.Fatalf("add %s: %v", p, err)
		}
	}
	photos, err := lib.PhotosBetween(ctx, ts.Add(-time.Hour), ts.Add(time.Hour))
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	id, err := lib.EnsureAlbum(ctx, "Trips", "test")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := lib.AddToAlbum(ctx, id, photos); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := lib.AddToAlbum(ctx, id, photos); err != nil {
		t.Fatalf("re-link: %v", err)
	}

	albums, err := lib.Albums(ctx)
	if err != nil {
		t.Fatalf("albums: %v", err)
	}
	if len(albums) != 1 {
		t.Fatalf("expected 1 album, got %d", len(albums))
	}
	if albums[0].Photos != 2 {
		t.Errorf("album photo count = %d, want 2", albums[0].Photos)
	}
}

func TestAlbumsListsByFolderAndName(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	for _, a := range []struct{ folder, name string }{
		{"Trips", "Zurich - 2024-07-01 to 2024-07-04"},
		{"Trips", "Athens - 2024-05-01 to 2024-05-04"},
		{"Events", "Birthday"},
	} {
		if _, err := lib.EnsureAlbum(ctx, a.folder, a.name); err != nil {
			t.Fatalf("ensure %s/%s: %v", a.folder, a.name, err)
		}
	}

	albums, err := lib.Albums(ctx)
	if err != nil {
		t.Fatalf("albums: %v", err)
	}
	if len(albums) != 3 {
		t.Fatalf("expected 3 albums, got %d", len(albums))
	}
	if albums[0].Folder != "Events" {
		t.Errorf("first folder = %q, want Events", albums[0].Folder)
	}
	if albums[1].Name >= albums[2].Name {
		t.Errorf("albums within a folder should sort by name: %q then %q",
			albums[1].Name, albums[2].Name)
	}
}
