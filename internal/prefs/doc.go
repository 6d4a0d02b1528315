// Package prefs persists lunchtray user preferences such as the UI theme.
//
// Preferences live in $XDG_CONFIG_HOME/lunchtray/prefs.toml, separate from
// config.toml so the UI never rewrites hand-edited settings:
//
//	theme = "Kanagawa"
//	view = "calendar"
//
// A missing or unreadable file yields defaults; Load only fails when the
// path itself cannot be resolved.
package prefs
