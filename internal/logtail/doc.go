// Package logtail reads the end of lunchtray's log file for the Logs view.
//
// # Reading
//
// Read keeps a ring buffer of the last maxLines lines while scanning the file
// once, so memory stays O(maxLines) however large the log grows. A missing
// file returns nil, nil; the UI shows an empty view until the first write.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// # Parsing
//
// In UI mode the logger writes zerolog JSON, one object per line:
//
//	{"level":"warn","component":"poller","error":"...","time":"...","message":"menu update failed"}
//
// Parse splits such a line into time, level, message and the remaining
// fields (sorted by key). Anything that is not a JSON object, such as a
// panic trace, comes back as a message-only Entry so nothing is hidden.
//
// Tail combines both steps and drops blank lines.
package logtail
