package home

import (
	"fmt"
	"math"
)

// NewRoom constructs a room and computes its stats. Returns a
// validation error when id or name is missing. Nil device and scene
// slices are normalized to empty so JSON output stays stable.
func NewRoom(id, name string, devices []Device, scenes []Scene) (*Room, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: room id is required", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: room name is required", ErrValidation)
	}

	if devices == nil {
		devices = []Device{}
	}
	if scenes == nil {
		scenes = []Scene{}
	}

	return &Room{
		ID:      id,
		Name:    name,
		Devices: devices,
		Scenes:  scenes,
		Stats:   calculateRoomStats(devices),
	}, nil
}

// NewHome composes rooms, home-level devices, and optional zones into
// a complete snapshot with summary stats. Performs no I/O; callers
// supply already-fetched data.
func NewHome(rooms []Room, homeDevices []Device, zones []Zone) *Home {
	if rooms == nil {
		rooms = []Room{}
	}
	if homeDevices == nil {
		homeDevices = []Device{}
	}
	if zones == nil {
		zones = []Zone{}
	}

	return &Home{
		Rooms:   rooms,
		Devices: homeDevices,
		Zones:   zones,
		Summary: CalculateHomeSummary(rooms, homeDevices),
	}
}

// CalculateHomeSummary derives whole-home statistics. Pure function:
// light counts span every room, scene count sums the rooms' scene
// lists, and the home device count covers only room-less devices.
func CalculateHomeSummary(rooms []Room, homeDevices []Device) Summary {
	s := Summary{
		RoomCount:       len(rooms),
		HomeDeviceCount: len(homeDevices),
	}

	for _, room := range rooms {
		s.SceneCount += len(room.Scenes)
		for _, d := range room.Devices {
			if d.Type != TypeLight {
				continue
			}
			s.TotalLights++
			if lightOn(d) {
				s.LightsOn++
			}
		}
	}

	return s
}

// calculateRoomStats derives per-room statistics. Average brightness
// covers lit lights only; off lights would drag the mean toward zero
// and misrepresent the room.
func calculateRoomStats(devices []Device) RoomStats {
	stats := RoomStats{TotalDevices: len(devices)}

	var sum float64
	for _, d := range devices {
		if d.Type != TypeLight || !lightOn(d) {
			continue
		}
		stats.LightsOn++
		sum += brightness(d)
	}

	if stats.LightsOn > 0 {
		stats.AverageBrightness = int(math.Round(sum / float64(stats.LightsOn)))
	}
	return stats
}

// lightOn reports whether a light's state marks it on.
func lightOn(d Device) bool {
	on, ok := d.State["on"].(bool)
	return ok && on
}

// brightness extracts a light's brightness, tolerating the numeric
// types that arrive from fixtures (int) and decoded JSON (float64).
func brightness(d Device) float64 {
	switch v := d.State["brightness"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
