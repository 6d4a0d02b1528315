// Package ui provides the terminal interface for lunchtray.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model never talks to the network: a tick
// command copies state.Store's snapshot into the model once per second, and
// the poller in package app fills the store in the background. Pressing r
// asks the poller for an immediate refresh through the Refresher interface.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling, messages and commands
//   - header.go: status badge, header line and command bar
//   - views.go: Today, Calendar and Logs content
//   - help.go: help overlay built from the key map
//   - keys.go: key bindings (bubbles/key)
//   - theme.go: color themes and lipgloss styles
//   - style_helpers.go: BgStyle for gap-free background runs
//
// # Views
//
//   - Today: breakfast and lunch for the target date (tomorrow once the
//     cutoff time has passed), with plan, theme and categories
//   - Calendar: every meal event in the look-ahead window, grouped by day
//   - Logs: tail of the JSON log file, parsed by package logtail
//
// The active view shares one viewport; switching views re-renders it.
//
// # Status Badge
//
// The header shows one of WAITING, CACHED, FETCHING, OK, FAILED or
// UNAVAILABLE. UNAVAILABLE means two or more polls failed in a row; the
// last good menu stays on screen.
//
// # Key Bindings
//
//   - tab / shift+tab: cycle views
//   - t, c, l: jump to Today, Calendar, Logs
//   - r: refresh the menu now
//   - j/k, g/G, pgup/pgdown: scroll
//   - T: cycle theme (saved to prefs.toml together with the view)
//   - h or ?: help
//   - e or ctrl+c: quit
package ui
