// Package database provides the SQLite persistence layer for Hearth Core.
//
// SQLite is the durable key-value store behind the two pieces of state
// that must survive a process restart: pairing credentials and room
// identity mappings. The wrapper configures WAL mode, busy timeouts and
// connection pooling suited to SQLite's single-writer model, and runs
// embedded schema migrations at startup.
//
// Sessions and aggregated Home views are deliberately NOT stored here;
// they are ephemeral by design.
package database
