package demo

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hearthd/hearth-core/internal/plugin"
)

// Service is a simulated vendor integration. Each instance owns its
// own connection state and serves fixture data, so a demo instance
// registered alongside a real one never shares state with it.
type Service struct {
	meta        plugin.Metadata
	requires2FA bool
	verifyCode  string

	mu          sync.RWMutex
	connected   bool
	verified    bool
	awaiting2FA bool
	endpointID  string
	since       time.Time

	rooms   []plugin.RoomRecord
	devices []plugin.DeviceRecord
	scenes  []plugin.SceneRecord

	router chi.Router
}

// NewLighting creates the simulated lighting bridge.
func NewLighting() *Service {
	rooms, devices, scenes := lightingFixtures()
	s := &Service{
		meta: plugin.Metadata{
			ID:          "lighting",
			Name:        "Demo Lighting Bridge",
			Vendor:      "hearth-demo",
			Description: "Simulated lighting bridge with two rooms of lights",
		},
		rooms:   rooms,
		devices: devices,
		scenes:  scenes,
	}
	s.router = s.buildRouter()
	return s
}

// NewHeating creates the simulated heating system.
func NewHeating() *Service {
	rooms, devices, scenes := heatingFixtures()
	s := &Service{
		meta: plugin.Metadata{
			ID:          "heating",
			Name:        "Demo Heating System",
			Vendor:      "hearth-demo",
			Description: "Simulated thermostats and hot water control",
		},
		rooms:   rooms,
		devices: devices,
		scenes:  scenes,
	}
	s.router = s.buildRouter()
	return s
}

// NewMusic creates the simulated music service. Its pairing flow
// requires a second factor: Connect reports requires_2fa until the
// code is submitted to the router's /verify endpoint. The demo code
// is fixed at "123456".
func NewMusic() *Service {
	rooms, devices, scenes := musicFixtures()
	s := &Service{
		meta: plugin.Metadata{
			ID:          "music",
			Name:        "Demo Music Service",
			Vendor:      "hearth-demo",
			Description: "Simulated speakers behind a 2FA pairing flow",
		},
		requires2FA: true,
		verifyCode:  "123456",
		rooms:       rooms,
		devices:     devices,
		scenes:      scenes,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Service) ID() string                { return s.meta.ID }
func (s *Service) Metadata() plugin.Metadata { return s.meta }

// Connect simulates pairing with the vendor. A missing credential is
// minted on the spot, matching a first-time pairing against a bridge.
func (s *Service) Connect(_ context.Context, params plugin.ConnectParams) (*plugin.ConnectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.endpointID = params.EndpointID

	if s.requires2FA && !s.verified {
		s.awaiting2FA = true
		return &plugin.ConnectResult{
			Outcome: plugin.OutcomeRequires2FA,
			Message: "submit the verification code to complete pairing",
		}, nil
	}

	ref := params.CredentialRef
	if ref == "" {
		ref = "demo-" + s.meta.ID + "-user"
	}

	s.connected = true
	s.since = time.Now().UTC()

	return &plugin.ConnectResult{
		Outcome:       plugin.OutcomeSuccess,
		CredentialRef: ref,
	}, nil
}

// Disconnect drops the simulated connection. Verified 2FA state is
// kept, so reconnecting does not repeat the challenge.
func (s *Service) Disconnect(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	s.since = time.Time{}
	return nil
}

func (s *Service) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *Service) ConnectionStatus() plugin.ConnectionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return plugin.ConnectionStatus{
		Connected:  s.connected,
		EndpointID: s.endpointID,
		Since:      s.since,
	}
}

// Status returns the simulated vendor status payload.
func (s *Service) Status(context.Context) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return nil, plugin.ErrNotConnected
	}

	return map[string]any{
		"service":      s.meta.ID,
		"endpoint_id":  s.endpointID,
		"device_count": len(s.devices),
		"room_count":   len(s.rooms),
		"since":        s.since.Format(time.RFC3339),
	}, nil
}

func (s *Service) Rooms(context.Context) ([]plugin.RoomRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return nil, plugin.ErrNotConnected
	}

	out := make([]plugin.RoomRecord, len(s.rooms))
	copy(out, s.rooms)
	return out, nil
}

func (s *Service) Devices(context.Context) ([]plugin.DeviceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return nil, plugin.ErrNotConnected
	}

	// Copy state maps so callers cannot bend the fixtures.
	out := make([]plugin.DeviceRecord, len(s.devices))
	for i, d := range s.devices {
		out[i] = d
		out[i].State = maps.Clone(d.State)
	}
	return out, nil
}

func (s *Service) Scenes(context.Context) ([]plugin.SceneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return nil, plugin.ErrNotConnected
	}

	out := make([]plugin.SceneRecord, len(s.scenes))
	copy(out, s.scenes)
	return out, nil
}

func (s *Service) Router() chi.Router { return s.router }

// buildRouter assembles the vendor-specific sub-handler. All demo
// services expose /info; the music service adds the 2FA verification
// endpoint its pairing flow drives.
func (s *Service) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Get("/info", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.meta)
	})

	if s.requires2FA {
		r.Post("/verify", s.handleVerify)
	}

	return r
}

// handleVerify completes the simulated 2FA pairing. On a correct code
// the service connects immediately; no second Connect call is needed.
func (s *Service) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaiting2FA {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no pairing in progress"})
		return
	}
	if req.Code != s.verifyCode {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect verification code"})
		return
	}

	s.verified = true
	s.awaiting2FA = false
	s.connected = true
	s.since = time.Now().UTC()

	writeJSON(w, http.StatusOK, plugin.ConnectResult{
		Outcome:       plugin.OutcomeSuccess,
		CredentialRef: "demo-" + s.meta.ID + "-user",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
