// Package session manages client sessions and pairing credentials for
// Hearth.
//
// It separates two lifetimes that are easy to conflate:
//   - Credentials: durable pairing secrets (e.g. a bridge username),
//     stored in SQLite so an endpoint pairs once and never again.
//   - Sessions: in-memory, opaque bearer tokens with a sliding TTL.
//     Many sessions may reference the same endpoint; revoking one
//     never touches the others or the stored credential.
//
// Sessions deliberately do not survive a restart. Clients just pick up
// a fresh session using the persisted credential, so restart recovery
// is invisible apart from one extra round trip.
//
// # Thread Safety
//
// Manager is safe for concurrent use from multiple goroutines. Lookups
// return copies, so a session held by a request stays valid even if
// the background sweeper removes the live entry mid-flight.
package session
