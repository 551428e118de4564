package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger defines the logging interface used by the Manager.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Manager owns the in-memory session table and fronts the credential
// repository. Sessions have a sliding lifetime: every validated access
// pushes the expiry forward by the configured TTL.
//
// All public methods are thread-safe. Lookups return copies, so a
// session handed to a caller stays usable even if the sweeper removes
// the live entry a moment later.
type Manager struct {
	creds CredentialRepository
	ttl   time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session

	sweepMu   sync.Mutex
	sweepStop chan struct{}
	sweepDone chan struct{}

	logger Logger
}

// NewManager creates a session manager with the given credential
// repository and sliding session TTL.
func NewManager(creds CredentialRepository, ttl time.Duration) *Manager {
	return &Manager{
		creds:    creds,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the manager.
func (m *Manager) SetLogger(logger Logger) {
	m.logger = logger
}

// CreateSession issues a new session bound to a service endpoint and
// its resolved credential. Tokens are unique for the lifetime of the
// process; creating a session never reuses or displaces another.
func (m *Manager) CreateSession(endpointID, credentialRef string) *Session {
	now := time.Now().UTC()
	s := &Session{
		Token:             "hs-" + uuid.NewString(),
		ServiceEndpointID: endpointID,
		CredentialRef:     credentialRef,
		CreatedAt:         now,
		LastAccessedAt:    now,
		ExpiresAt:         now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()

	m.logger.Debug("session created", "endpoint_id", endpointID)

	out := *s
	return &out
}

// GetSession validates a token and returns a copy of its session, or
// nil when the token is unknown or expired. A successful lookup slides
// the expiry forward by the TTL.
func (m *Manager) GetSession(token string) *Session {
	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil
	}
	if s.expired(now) {
		delete(m.sessions, token)
		return nil
	}

	s.LastAccessedAt = now
	s.ExpiresAt = now.Add(m.ttl)

	out := *s
	return &out
}

// RevokeSession removes a single session. Other sessions for the same
// endpoint and the stored credential are untouched. Revoking an
// unknown token is a no-op.
func (m *Manager) RevokeSession(token string) {
	m.mu.Lock()
	_, existed := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if existed {
		m.logger.Debug("session revoked")
	}
}

// Stats returns a snapshot of session counts. Expired entries still
// awaiting the sweeper are excluded.
func (m *Manager) Stats() Stats {
	now := time.Now().UTC()

	m.mu.RLock()
	defer m.mu.RUnlock()

	endpoints := make(map[string]struct{})
	active := 0
	for _, s := range m.sessions {
		if s.expired(now) {
			continue
		}
		active++
		endpoints[s.ServiceEndpointID] = struct{}{}
	}

	return Stats{
		ActiveSessions:  active,
		UniqueEndpoints: len(endpoints),
	}
}

// StoreCredentials persists the credential reference for an endpoint,
// overwriting any previous pairing.
func (m *Manager) StoreCredentials(ctx context.Context, endpointID, credentialRef string) error {
	if err := m.creds.Store(ctx, endpointID, credentialRef); err != nil {
		return err
	}
	m.logger.Info("credentials stored", "endpoint_id", endpointID)
	return nil
}

// GetCredentials resolves the stored credential for an endpoint.
// The boolean reports whether a credential exists; the error is
// reserved for storage failures.
func (m *Manager) GetCredentials(ctx context.Context, endpointID string) (string, bool, error) {
	ref, err := m.creds.Get(ctx, endpointID)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return ref, true, nil
}

// HasCredentials reports whether an endpoint has paired before.
func (m *Manager) HasCredentials(ctx context.Context, endpointID string) (bool, error) {
	return m.creds.Has(ctx, endpointID)
}

// DeleteCredentials removes the stored pairing for an endpoint and
// revokes every session that references it.
func (m *Manager) DeleteCredentials(ctx context.Context, endpointID string) error {
	if err := m.creds.Delete(ctx, endpointID); err != nil {
		return err
	}

	m.mu.Lock()
	for token, s := range m.sessions {
		if s.ServiceEndpointID == endpointID {
			delete(m.sessions, token)
		}
	}
	m.mu.Unlock()

	m.logger.Info("credentials deleted", "endpoint_id", endpointID)
	return nil
}

// PairedEndpointCount returns the number of endpoints with a stored
// credential.
func (m *Manager) PairedEndpointCount(ctx context.Context) (int, error) {
	return m.creds.CountEndpoints(ctx)
}

// StartSweeper launches a background goroutine that periodically
// removes expired sessions. Calling it while a sweeper is already
// running is a no-op.
func (m *Manager) StartSweeper(interval time.Duration) {
	m.sweepMu.Lock()
	defer m.sweepMu.Unlock()

	if m.sweepStop != nil {
		return
	}

	m.sweepStop = make(chan struct{})
	m.sweepDone = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := m.SweepExpired(); n > 0 {
					m.logger.Debug("expired sessions swept", "count", n)
				}
			case <-stop:
				return
			}
		}
	}(m.sweepStop, m.sweepDone)

	m.logger.Info("session sweeper started", "interval", interval.String())
}

// StopSweeper stops the background sweeper and waits for it to exit.
// Safe to call when no sweeper is running.
func (m *Manager) StopSweeper() {
	m.sweepMu.Lock()
	defer m.sweepMu.Unlock()

	if m.sweepStop == nil {
		return
	}

	close(m.sweepStop)
	<-m.sweepDone
	m.sweepStop = nil
	m.sweepDone = nil
}

// SweepExpired removes expired sessions and returns how many were
// removed. Exposed so callers and tests can trigger a sweep directly.
func (m *Manager) SweepExpired() int {
	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, s := range m.sessions {
		if s.expired(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}
