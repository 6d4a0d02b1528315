package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists the most recent raw menu feed so a restart can show the
// last known menu before the first poll completes.
type Cache struct {
	db *sql.DB
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	c := &Cache{db: db}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshot (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			fetched_at TEXT NOT NULL,
			payload    BLOB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Save replaces the cached feed.
func (c *Cache) Save(payload []byte, fetchedAt time.Time) error {
	if len(payload) == 0 {
		return fmt.Errorf("saving snapshot: empty payload")
	}
	_, err := c.db.Exec(`
		INSERT INTO snapshot (id, fetched_at, payload) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			payload = excluded.payload
	`, fetchedAt.UTC().Format(time.RFC3339Nano), payload)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// Load returns the cached feed. ok is false when nothing has been saved yet.
func (c *Cache) Load() (payload []byte, fetchedAt time.Time, ok bool, err error) {
	var stamp string
	err = c.db.QueryRow("SELECT fetched_at, payload FROM snapshot WHERE id = 1").Scan(&stamp, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("loading snapshot: %w", err)
	}
	fetchedAt, err = time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("parsing snapshot time %q: %w", stamp, err)
	}
	return payload, fetchedAt, true, nil
}
