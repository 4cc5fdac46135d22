// Package history persists a record of every stitch and GIF render in a
// SQLite database, so `apsdir history` can answer what was rendered from
// where, with which arguments, and whether it succeeded.
package history
