package session

import "time"

// Session is a client-scoped, time-bounded authorization handle. It is
// independent of the underlying pairing credential: many sessions may
// reference the same service endpoint, and revoking one never touches
// the others or the stored credential.
//
// Sessions are ephemeral in-memory state with a sliding lifetime; they
// deliberately do not survive a process restart.
type Session struct {
	// Token is the opaque, unique, prefixed session identifier
	// presented by clients (e.g. "hs-4f9d...").
	Token string `json:"token"`

	// ServiceEndpointID identifies the paired vendor endpoint this
	// session operates against (e.g. a bridge IP). Not unique per
	// session.
	ServiceEndpointID string `json:"service_endpoint_id"`

	// CredentialRef is the vendor credential resolved for this session
	// (e.g. a bridge username). The manager never validates it.
	CredentialRef string `json:"credential_ref"`

	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// expired reports whether the session's lifetime has passed at t.
func (s *Session) expired(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// Stats holds session manager statistics for monitoring.
type Stats struct {
	// ActiveSessions is the number of non-expired sessions.
	ActiveSessions int `json:"active_sessions"`

	// UniqueEndpoints is the number of distinct service endpoints
	// referenced by active sessions.
	UniqueEndpoints int `json:"unique_endpoints"`
}
