// Package state provides thread-safe state management for lunchtray.
//
// # Overview
//
// Store holds the current normalized menu together with poll status so the
// background poller and its readers (terminal UI, CLI commands) never share
// mutable data. It is the only place the "current snapshot" lives.
//
//	Producer (Poller):             Consumers (UI, CLI):
//	┌────────────────┐            ┌─────────────────┐
//	│ BeginFetch()   │            │                 │
//	│ Fetch+Normalize│            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│                │  (mutex)   │ store.Current() │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	// Success: the new menu replaces the old one as a whole
//	store.Update(&snap, fetchedAt, nil)
//
//	// Failure: the old menu stays visible, the error is recorded
//	store.Update(nil, time.Time{}, err)
//
// Two or more consecutive failures mark the snapshot unavailable; readers
// keep showing the stale menu with that flag.
//
// # Immutability
//
// menu.Snapshot values are never modified after Normalize returns them, so
// the Store hands them out without copying. Errors are re-wrapped on read so
// callers cannot compare against the stored instance.
package state
