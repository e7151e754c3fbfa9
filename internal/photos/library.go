// Package photos maintains a local photo library in SQLite and files
// photos into date-ranged albums built from trip itineraries.
package photos

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS photos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL UNIQUE,
	taken_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_photos_taken_at ON photos(taken_at);

CREATE TABLE IF NOT EXISTS albums (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	folder TEXT NOT NULL,
	name TEXT NOT NULL,
	UNIQUE(folder, name)
);

CREATE TABLE IF NOT EXISTS album_photos (
	album_id INTEGER NOT NULL REFERENCES albums(id),
	photo_id INTEGER NOT NULL REFERENCES photos(id),
	PRIMARY KEY (album_id, photo_id)
);
`

// Photo is one picture in the library.
type Photo struct {
	ID      int64
	Path    string
	TakenAt time.Time
}

// Album is a named collection of photos under a folder.
type Album struct {
	ID     int64
	Folder string
	Name   string
	Photos int
}

// Library is a SQLite-backed photo database.
type Library struct {
	db *sql.DB
}

// Open opens the library at path, creating the schema when missing.
func Open(path string) (*Library, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Library{db: db}, nil
}

// Close releases the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// AddPhoto records a photo. Re-adding an already known path is not an error.
func (l *Library) AddPhoto(ctx context.Context, path string, takenAt time.Time) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO photos (path, taken_at) VALUES (?, ?)`,
		path, takenAt.UTC())
	if err != nil {
		return fmt.Errorf("add photo: %w", err)
	}
	return nil
}

// PhotosBetween returns photos taken in [from, to), oldest first.
func (l *Library) PhotosBetween(ctx context.Context, from, to time.Time) ([]Photo, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, path, taken_at FROM photos
		 WHERE taken_at >= ? AND taken_at < ?
		 ORDER BY taken_at, id`,
		from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.Path, &p.TakenAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}

// EnsureAlbum returns the id of the named album, creating it when missing.
func (l *Library) EnsureAlbum(ctx context.Context, folder, name string) (int64, error) {
	if _, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO albums (folder, name) VALUES (?, ?)`,
		folder, name); err != nil {
		return 0, fmt.Errorf("create album: %w", err)
	}

	var id int64
	err := l.db.QueryRowContext(ctx,
		`SELECT id FROM albums WHERE folder = ? AND name = ?`,
		folder, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("look up album: %w", err)
	}
	return id, nil
}

// AddToAlbum links photos into an album. Links that already exist are kept.
func (l *Library) AddToAlbum(ctx context.Context, albumID int64, photos []Photo) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO album_photos (album_id, photo_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range photos {
		if _, err := stmt.ExecContext(ctx, albumID, p.ID); err != nil {
			return fmt.Errorf("link photo %s: %w", p.Path, err)
		}
	}
	return tx.Commit()
}

// Albums lists every album with its photo count, grouped by folder.
func (l *Library) Albums(ctx context.Context) ([]Album, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT a.id, a.folder, a.name, COUNT(ap.photo_id)
		 FROM albums a
		 LEFT JOIN album_photos ap ON ap.album_id = a.id
		 GROUP BY a.id
		 ORDER BY a.folder, a.name`)
	if err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.ID, &a.Folder, &a.Name, &a.Photos); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}
