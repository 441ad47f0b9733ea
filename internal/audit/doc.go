// Package audit records a history of modelorg operations.
//
// Every mutating operation (setup, init, set-value, archive, remove, etc.)
// appends one entry to a per-user log stored as JSON Lines at:
//
//	<config dir>/history.jsonl
//
// Each entry carries a UTC timestamp, the username, the operation and the
// project, experiment or container it touched.
//
// # Usage
//
//	audit.Log(store.ConfigDir, audit.Entry{Operation: "init", Project: "trigo", Experiment: "sine"})
//
// Logging is best-effort; a failed write is ignored. ReadEntries skips
// malformed lines to tolerate partial writes.
package audit
