package plugin

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
)

// ConnectOutcome classifies the result of a pairing/connect attempt.
type ConnectOutcome string

const (
	// OutcomeSuccess means the plugin is connected and ready.
	OutcomeSuccess ConnectOutcome = "success"

	// OutcomeRequires2FA means the vendor needs a second factor before
	// the connection completes. The plugin's Router exposes the
	// vendor-specific verification endpoint.
	OutcomeRequires2FA ConnectOutcome = "requires_2fa"

	// OutcomeError means the attempt failed outright.
	OutcomeError ConnectOutcome = "error"
)

// ConnectParams carries everything a plugin needs to reach its vendor
// endpoint. CredentialRef may be empty on a first-time pairing.
type ConnectParams struct {
	EndpointID    string `json:"endpoint_id"`
	CredentialRef string `json:"credential_ref,omitempty"`
}

// ConnectResult is the uniform outcome envelope of Connect.
type ConnectResult struct {
	Outcome ConnectOutcome `json:"outcome"`

	// CredentialRef is the vendor credential issued during pairing,
	// present only on success when the vendor minted one.
	CredentialRef string `json:"credential_ref,omitempty"`

	// Message is a human-readable detail, mainly for error outcomes
	// and 2FA prompts.
	Message string `json:"message,omitempty"`
}

// ConnectionStatus is a snapshot of a plugin's link to its vendor.
type ConnectionStatus struct {
	Connected  bool      `json:"connected"`
	EndpointID string    `json:"endpoint_id,omitempty"`
	Since      time.Time `json:"since,omitzero"`
	LastError  string    `json:"last_error,omitempty"`
}

// Metadata describes a registered service for discovery endpoints.
type Metadata struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Vendor      string `json:"vendor"`
	Description string `json:"description,omitempty"`

	// DemoAvailable is filled in by the registry; plugins leave it false.
	DemoAvailable bool `json:"demo_available"`
}

// RoomRecord is a room as the vendor reports it, identifiers in the
// vendor's own space.
type RoomRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeviceRecord is a device as the vendor reports it. RoomID is empty
// for devices the vendor does not place in a room. State is the
// vendor's opaque per-type payload, passed through untouched.
type DeviceRecord struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Type   string         `json:"type"`
	RoomID string         `json:"room_id,omitempty"`
	State  map[string]any `json:"state,omitempty"`
}

// SceneRecord is a vendor scene, bound to a vendor room.
type SceneRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	RoomID string `json:"room_id,omitempty"`
}

// Plugin is the uniform capability surface every vendor integration
// satisfies. Adding a vendor means implementing this interface plus,
// optionally, a demo counterpart; nothing upstream changes.
//
// Data accessors (Status, Rooms, Devices, Scenes) return
// ErrNotConnected when no live connection exists. Vendor I/O failures
// wrap ErrBridgeConnection and propagate unretried.
type Plugin interface {
	// ID is the stable service identifier used in routes and room
	// mapping keys (e.g. "lighting").
	ID() string

	Metadata() Metadata

	Connect(ctx context.Context, params ConnectParams) (*ConnectResult, error)
	Disconnect(ctx context.Context) error
	IsConnected() bool
	ConnectionStatus() ConnectionStatus

	// Status returns the vendor-specific status payload.
	Status(ctx context.Context) (map[string]any, error)

	Rooms(ctx context.Context) ([]RoomRecord, error)
	Devices(ctx context.Context) ([]DeviceRecord, error)
	Scenes(ctx context.Context) ([]SceneRecord, error)

	// Router returns the plugin's mountable sub-handler for
	// vendor-specific endpoints (e.g. 2FA verification). May return
	// an empty router, never nil.
	Router() chi.Router
}
