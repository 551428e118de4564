package demo

import "github.com/hearthd/hearth-core/internal/plugin"

// Fixture data for the simulated vendors. Deterministic on purpose:
// demo mode backs automated tests and sales walkthroughs, so every
// process sees the same rooms, devices, and scenes.

func lightingFixtures() ([]plugin.RoomRecord, []plugin.DeviceRecord, []plugin.SceneRecord) {
	rooms := []plugin.RoomRecord{
		{ID: "1", Name: "Living Room"},
		{ID: "2", Name: "Kitchen"},
	}
	devices := []plugin.DeviceRecord{
		{
			ID: "l-1", Name: "Ceiling Light", Type: "light", RoomID: "1",
			State: map[string]any{"on": true, "brightness": 100},
		},
		{
			ID: "l-2", Name: "Floor Lamp", Type: "light", RoomID: "1",
			State: map[string]any{"on": true, "brightness": 50},
		},
		{
			ID: "l-3", Name: "Reading Light", Type: "light", RoomID: "1",
			State: map[string]any{"on": false, "brightness": 80},
		},
		{
			ID: "l-4", Name: "Worktop Strip", Type: "light", RoomID: "2",
			State: map[string]any{"on": true, "brightness": 75},
		},
		{
			ID: "l-5", Name: "Porch Light", Type: "light",
			State: map[string]any{"on": false, "brightness": 0},
		},
	}
	scenes := []plugin.SceneRecord{
		{ID: "s-1", Name: "Movie Night", RoomID: "1"},
		{ID: "s-2", Name: "Bright", RoomID: "1"},
		{ID: "s-3", Name: "Cooking", RoomID: "2"},
	}
	return rooms, devices, scenes
}

func heatingFixtures() ([]plugin.RoomRecord, []plugin.DeviceRecord, []plugin.SceneRecord) {
	rooms := []plugin.RoomRecord{
		{ID: "zone-1", Name: "Living Room"},
		{ID: "zone-2", Name: "Bedroom"},
	}
	devices := []plugin.DeviceRecord{
		{
			ID: "t-1", Name: "Living Room Thermostat", Type: "thermostat", RoomID: "zone-1",
			State: map[string]any{"current": 20.5, "target": 21.0, "heating": true},
		},
		{
			ID: "t-2", Name: "Bedroom Thermostat", Type: "thermostat", RoomID: "zone-2",
			State: map[string]any{"current": 18.0, "target": 17.0, "heating": false},
		},
		{
			ID: "hw-1", Name: "Hot Water", Type: "hotWater",
			State: map[string]any{"on": true, "boost_minutes": 0},
		},
	}
	return rooms, devices, nil
}

func musicFixtures() ([]plugin.RoomRecord, []plugin.DeviceRecord, []plugin.SceneRecord) {
	rooms := []plugin.RoomRecord{
		{ID: "den", Name: "Den"},
	}
	devices := []plugin.DeviceRecord{
		{
			ID: "sp-1", Name: "Den Speaker", Type: "speaker", RoomID: "den",
			State: map[string]any{"playing": true, "volume": 35, "track": "Blue in Green"},
		},
		{
			ID: "sp-2", Name: "Portable Speaker", Type: "speaker",
			State: map[string]any{"playing": false, "volume": 20},
		},
	}
	return rooms, devices, nil
}
