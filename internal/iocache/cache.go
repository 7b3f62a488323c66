// Package iocache keeps fetched catalog documents in a local SQLite
// database, so the portal can start when a document location is down.
package iocache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gnames/gnuuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	location   TEXT NOT NULL,
	content_id TEXT NOT NULL,
	fetched_at INTEGER NOT NULL,
	body       BLOB NOT NULL
)`

// Entry is a cached document.
type Entry struct {
	// Name of the catalog document.
	Name string
	// Location the body was fetched from.
	Location string
	// ContentID is a UUIDv5 of the body, equal bodies share it.
	ContentID string
	// FetchedAt is the time the body was stored.
	FetchedAt time.Time
	// Body is the raw document. List leaves it empty.
	Body []byte
}

// Cache is a SQLite document cache.
type Cache struct {
	db   *sql.DB
	path string
}

// Open opens or creates the cache database at path. Use ":memory:" for a
// cache that lives only as long as the process.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, CacheOpenError(path, err)
	}
	// SQLite allows one writer, concurrent fetchers share the connection.
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, CacheOpenError(path, err)
	}
	return &Cache{db: db, path: path}, nil
}

// Path of the database file.
func (c *Cache) Path() string {
	return c.path
}

// Put stores a document body, replacing an older copy.
func (c *Cache) Put(ctx context.Context, name, location string, body []byte) error {
	q := `
INSERT INTO documents (name, location, content_id, fetched_at, body)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	location = excluded.location,
	content_id = excluded.content_id,
	fetched_at = excluded.fetched_at,
	body = excluded.body`

	_, err := c.db.ExecContext(ctx, q,
		name, location, ContentID(body), time.Now().Unix(), body,
	)
	if err != nil {
		return CacheWriteError(name, err)
	}
	return nil
}

// Get returns a cached document. The boolean is false when the cache has
// no copy of it.
func (c *Cache) Get(ctx context.Context, name string) (Entry, bool, error) {
	q := `
SELECT name, location, content_id, fetched_at, body
FROM documents WHERE name = ?`

	var res Entry
	var ts int64
	err := c.db.QueryRowContext(ctx, q, name).Scan(
		&res.Name, &res.Location, &res.ContentID, &ts, &res.Body,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, CacheReadError(name, err)
	}
	res.FetchedAt = time.Unix(ts, 0)
	return res, true, nil
}

// List returns all entries without bodies, ordered by name.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	q := `
SELECT name, location, content_id, fetched_at
FROM documents ORDER BY name`

	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, CacheReadError("documents", err)
	}
	defer rows.Close()

	var res []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err = rows.Scan(&e.Name, &e.Location, &e.ContentID, &ts); err != nil {
			return nil, CacheReadError("documents", err)
		}
		e.FetchedAt = time.Unix(ts, 0)
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, CacheReadError("documents", err)
	}
	return res, nil
}

// Delete removes a document from the cache.
func (c *Cache) Delete(ctx context.Context, name string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM documents WHERE name = ?", name)
	if err != nil {
		return CacheWriteError(name, err)
	}
	return nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// ContentID returns a UUIDv5 of a document body.
func ContentID(body []byte) string {
	return gnuuid.New(string(body)).String()
}
