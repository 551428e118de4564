package plugin

import "errors"

var (
	// ErrServiceUnavailable indicates an unknown service id, or a demo
	// variant was requested for a service that has none.
	ErrServiceUnavailable = errors.New("plugin: service unavailable")

	// ErrNotConnected indicates status or data was requested from a
	// plugin that has no live connection. Callers connect first; the
	// plugin never answers from stale or default state.
	ErrNotConnected = errors.New("plugin: not connected")

	// ErrBridgeConnection indicates a vendor network failure. Retryable
	// by the caller; never retried internally.
	ErrBridgeConnection = errors.New("plugin: bridge connection failed")
)
