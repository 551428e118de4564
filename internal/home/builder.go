package home

import (
	"context"
	"fmt"
	"sort"

	"github.com/hearthd/hearth-core/internal/plugin"
	"github.com/hearthd/hearth-core/internal/reqctx"
	"github.com/hearthd/hearth-core/internal/roommap"
)

// Logger defines the logging interface used by the Builder.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Builder assembles the unified Home snapshot from live service data.
//
// It walks every registered service, honoring the request's demo flag
// when resolving plugin instances, maps each vendor room onto its
// canonical home room, and folds the result into rooms with derived
// stats. Nothing is cached; every Build reflects the services as they
// are right now.
type Builder struct {
	registry *plugin.Registry
	rooms    *roommap.Service
	logger   Logger
}

// NewBuilder creates a home builder over the registry and room
// mapping service.
func NewBuilder(registry *plugin.Registry, rooms *roommap.Service) *Builder {
	return &Builder{
		registry: registry,
		rooms:    rooms,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the builder.
func (b *Builder) SetLogger(logger Logger) {
	b.logger = logger
}

// roomBucket accumulates one home room's contents across services.
type roomBucket struct {
	name    string
	devices []Device
	scenes  []Scene
}

// Build produces the current Home snapshot.
//
// Services that are unavailable (demo variant requested but absent) or
// not connected contribute nothing. Vendor fetch failures are not
// swallowed; they abort the build and propagate to the caller.
func (b *Builder) Build(ctx context.Context) (*Home, error) {
	demoMode := reqctx.DemoMode(ctx)

	buckets := make(map[string]*roomBucket)
	var homeDevices []Device

	for _, serviceID := range b.registry.GetIDs() {
		p := b.registry.Get(serviceID, demoMode)
		if p == nil {
			b.logger.Warn("service unavailable, skipping",
				"service_id", serviceID, "demo_mode", demoMode)
			continue
		}
		if !p.IsConnected() {
			b.logger.Debug("service not connected, skipping",
				"service_id", serviceID, "demo_mode", demoMode)
			continue
		}

		if err := b.collect(ctx, serviceID, p, buckets, &homeDevices); err != nil {
			return nil, err
		}
	}

	rooms := make([]Room, 0, len(buckets))
	for homeRoomID, bucket := range buckets {
		name := bucket.name
		if name == "" {
			name = homeRoomID
		}
		room, err := NewRoom(homeRoomID, name, bucket.devices, bucket.scenes)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Name != rooms[j].Name {
			return rooms[i].Name < rooms[j].Name
		}
		return rooms[i].ID < rooms[j].ID
	})

	return NewHome(rooms, homeDevices, nil), nil
}

// collect folds one service's rooms, devices, and scenes into the
// accumulating buckets.
func (b *Builder) collect(ctx context.Context, serviceID string, p plugin.Plugin,
	buckets map[string]*roomBucket, homeDevices *[]Device) error {

	svcRooms, err := p.Rooms(ctx)
	if err != nil {
		return fmt.Errorf("fetching rooms from %s: %w", serviceID, err)
	}
	svcDevices, err := p.Devices(ctx)
	if err != nil {
		return fmt.Errorf("fetching devices from %s: %w", serviceID, err)
	}
	svcScenes, err := p.Scenes(ctx)
	if err != nil {
		return fmt.Errorf("fetching scenes from %s: %w", serviceID, err)
	}

	roomToHome := make(map[string]string, len(svcRooms))
	for _, r := range svcRooms {
		homeRoomID, err := b.rooms.MapServiceRoom(ctx, serviceID, r.ID, r.Name)
		if err != nil {
			return fmt.Errorf("mapping room %s:%s: %w", serviceID, r.ID, err)
		}
		roomToHome[r.ID] = homeRoomID

		bucket := buckets[homeRoomID]
		if bucket == nil {
			bucket = &roomBucket{}
			buckets[homeRoomID] = bucket
		}
		if bucket.name == "" {
			// Canonical name wins; vendor display name is the fallback.
			if canonical, ok := b.rooms.GetRoomNameByID(homeRoomID); ok && canonical != "" {
				bucket.name = canonical
			} else {
				bucket.name = r.Name
			}
		}
	}

	for _, d := range svcDevices {
		dev := Device{
			ID:        serviceID + ":" + d.ID,
			Name:      d.Name,
			Type:      DeviceType(d.Type),
			ServiceID: serviceID,
			State:     d.State,
		}

		homeRoomID, inRoom := roomToHome[d.RoomID]
		if d.RoomID == "" || !inRoom {
			*homeDevices = append(*homeDevices, dev)
			continue
		}
		buckets[homeRoomID].devices = append(buckets[homeRoomID].devices, dev)
	}

	for _, sc := range svcScenes {
		homeRoomID, inRoom := roomToHome[sc.RoomID]
		if !inRoom {
			continue
		}
		buckets[homeRoomID].scenes = append(buckets[homeRoomID].scenes, Scene{
			ID:        sc.ID,
			Name:      sc.Name,
			ServiceID: serviceID,
		})
	}

	return nil
}
