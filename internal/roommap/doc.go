// Package roommap maintains the canonical room identity layer for
// Hearth.
//
// Each vendor service has its own disjoint room identifier space. The
// mapping layer assigns every (serviceID, serviceRoomID) pair a stable
// home room id, so the dashboard's room layout survives vendor API
// renames and lets the user combine "Lounge" from one service with
// "Living Room" from another into a single logical room.
//
// Mappings and home rooms are the only aggregation state that survives
// a restart; they persist to SQLite on every mutation and are loaded
// back by Initialize.
//
// # Thread Safety
//
// Service is safe for concurrent use. First-time mapping holds the
// write lock across check, persist, and insert, so concurrent requests
// discovering the same service room always converge on one home room.
package roommap
