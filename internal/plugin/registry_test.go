package plugin

import (
	"context"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
)

// stubPlugin is a minimal Plugin for registry tests.
type stubPlugin struct {
	id        string
	connected bool
}

func (s *stubPlugin) ID() string         { return s.id }
func (s *stubPlugin) Metadata() Metadata { return Metadata{ID: s.id, Name: s.id} }

func (s *stubPlugin) Connect(context.Context, ConnectParams) (*ConnectResult, error) {
	s.connected = true
	return &ConnectResult{Outcome: OutcomeSuccess}, nil
}

func (s *stubPlugin) Disconnect(context.Context) error { s.connected = false; return nil }
func (s *stubPlugin) IsConnected() bool                { return s.connected }

func (s *stubPlugin) ConnectionStatus() ConnectionStatus {
	return ConnectionStatus{Connected: s.connected}
}

func (s *stubPlugin) Status(context.Context) (map[string]any, error) {
	if !s.connected {
		return nil, ErrNotConnected
	}
	return map[string]any{"id": s.id}, nil
}

func (s *stubPlugin) Rooms(context.Context) ([]RoomRecord, error)     { return nil, nil }
func (s *stubPlugin) Devices(context.Context) ([]DeviceRecord, error) { return nil, nil }
func (s *stubPlugin) Scenes(context.Context) ([]SceneRecord, error)   { return nil, nil }
func (s *stubPlugin) Router() chi.Router                              { return chi.NewRouter() }

func TestRegistry_GetVariants(t *testing.T) {
	r := NewRegistry()
	real := &stubPlugin{id: "lighting"}
	demo := &stubPlugin{id: "lighting"}
	r.Register(real)
	r.RegisterDemo(demo)

	if got := r.Get("lighting", false); got != Plugin(real) {
		t.Errorf("Get(lighting, false) = %v, want real instance", got)
	}
	if got := r.Get("lighting", true); got != Plugin(demo) {
		t.Errorf("Get(lighting, true) = %v, want demo instance", got)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubPlugin{id: "lighting"})

	if got := r.Get("toaster", false); got != nil {
		t.Errorf("Get(unknown) = %v, want nil", got)
	}
	// Registered service, but no demo variant.
	if got := r.Get("lighting", true); got != nil {
		t.Errorf("Get(no demo variant) = %v, want nil", got)
	}
}

func TestRegistry_IndependentDemoState(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubPlugin{id: "lighting"})
	r.RegisterDemo(&stubPlugin{id: "lighting"})

	demo := r.Get("lighting", true)
	if _, err := demo.Connect(context.Background(), ConnectParams{}); err != nil {
		t.Fatalf("demo Connect() error = %v", err)
	}

	if r.Get("lighting", false).IsConnected() {
		t.Error("connecting the demo variant connected the real plugin")
	}
}

func TestRegistry_IDsAndHas(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubPlugin{id: "music"})
	r.Register(&stubPlugin{id: "lighting"})
	r.Register(&stubPlugin{id: "heating"})

	want := []string{"heating", "lighting", "music"}
	if got := r.GetIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("GetIDs() = %v, want %v", got, want)
	}

	if !r.Has("music") {
		t.Error("Has(music) = false")
	}
	if r.Has("toaster") {
		t.Error("Has(toaster) = true")
	}

	if got := len(r.GetAll()); got != 3 {
		t.Errorf("len(GetAll()) = %d, want 3", got)
	}
}

func TestRegistry_Metadata(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubPlugin{id: "lighting"})
	r.Register(&stubPlugin{id: "music"})
	r.RegisterDemo(&stubPlugin{id: "lighting"})

	metas := r.GetAllMetadata()
	if len(metas) != 2 {
		t.Fatalf("GetAllMetadata() returned %d entries, want 2", len(metas))
	}

	byID := make(map[string]Metadata)
	for _, m := range metas {
		byID[m.ID] = m
	}
	if !byID["lighting"].DemoAvailable {
		t.Error("lighting metadata missing DemoAvailable")
	}
	if byID["music"].DemoAvailable {
		t.Error("music metadata claims a demo variant")
	}
}
