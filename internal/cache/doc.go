// Package cache persists the last fetched menu feed in SQLite.
//
// # Overview
//
// The cache is a single-row table so a restart can show the previous menu
// before the first poll completes, and one-shot commands can answer while
// the api is down.
//
//	snapshot(id = 1, fetched_at TEXT, payload BLOB)
//
// The payload is the raw feed JSON, not the normalized snapshot, so a change
// to menu_plans applies to cached data on the next start. Timestamps are
// stored as RFC 3339 in UTC.
//
// # Driver
//
// modernc.org/sqlite is registered as "sqlite" and needs no cgo. The pool is
// limited to one connection; the cache has a single writer.
//
// Set cache_path = "off" in config.toml to disable the cache entirely.
package cache
