package photos

import (
	"context"
	"fmt"
)

// Builder files trips into date-ranged albums.
type Builder struct {
	Lib    *Library
	Folder string

	// Logf, when set, receives one progress line per trip.
	Logf func(format string, args ...any)
}

// BuildResult counts what a build run did.
type BuildResult struct {
	Trips   int // trips examined
	Albums  int // albums created or filled
	Photos  int // photos filed into albums
	Skipped int // trips with no photos in range
}

func (b *Builder) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}

// Build files every trip into its album. A trip with no photos in range
// is skipped so the library does not fill with empty albums.
func (b *Builder) Build(ctx context.Context, trips []Trip) (*BuildResult, error) {
	result := &BuildResult{}
	for i, trip := range trips {
		result.Trips++
		name := trip.AlbumName()

		from, to, err := trip.Range()
		if err != nil {
			return result, fmt.Errorf("trip %q: %w", trip.DisplayName, err)
		}

		found, err := b.Lib.PhotosBetween(ctx, from, to)
		if err != nil {
			return result, fmt.Errorf("trip %q: %w", trip.DisplayName, err)
		}
		b.logf("[%d] %s: %d photos between %s and %s",
			i, name, len(found), trip.StartDate, trip.EndDate)

		if len(found) == 0 {
			result.Skipped++
			continue
		}

		albumID, err := b.Lib.EnsureAlbum(ctx, b.Folder, name)
		if err != nil {
			return result, fmt.Errorf("trip %q: %w", trip.DisplayName, err)
		}
		if err := b.Lib.AddToAlbum(ctx, albumID, found); err != nil {
			return result, fmt.Errorf("trip %q: %w", trip.DisplayName, err)
		}

		result.Albums++
		result.Photos += len(found)
	}
	return result, nil
}
