// Package app wires lunchtray together.
//
// # Overview
//
// Open is the composition root shared by every entry point. It validates the
// configuration, builds the LinqConnect client, opens the snapshot cache and
// seeds the store from it, then constructs the Poller. Run adds a file
// logger and preferences on top and hands the store to the terminal UI.
//
// # Data Flow
//
//	Run()
//	 ├─> config.Load()          read config.toml
//	 ├─> logging.OpenFile()     JSON log consumed by the logs view
//	 ├─> Open()
//	 │    ├─> linq.NewClient()
//	 │    ├─> cache.Open()      optional, seeds state.Store
//	 │    └─> NewPoller()
//	 ├─> Poller.Start()         background refresh loop
//	 └─> ui.Run()               blocks until quit or ctx cancel
//
// # Polling Behavior
//
// The poller fetches the window [now, now+calendar_days] every
// update_interval minutes (default 180) and on ForceRefresh. Only one fetch
// runs at a time; refresh requests made during a fetch collapse into one
// follow-up fetch. A failed fetch records the error on the store and keeps
// the previous menu. A successful fetch is normalized, published, and
// written to the cache.
//
// # Error Handling
//
// Fatal errors are returned from Run: unreadable config, missing district
// or building ids, and an unopenable log file. Fetch failures are never
// fatal; they surface through state.Snapshot and the UI header.
package app
