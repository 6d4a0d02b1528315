// Package logging builds the zerolog loggers used across lunchtray.
//
// CLI commands log human-readable lines to stderr (NewConsole). The terminal
// UI owns the screen, so in UI mode logs go to a JSON lines file instead
// (OpenFile), which the logs view reads back through internal/logtail.
//
// Levels are parsed leniently: unknown values fall back to info.
package logging
