package home

// DeviceType classifies a device for aggregation. The set is open:
// unknown vendor types pass through untouched, they just don't
// contribute to light statistics.
type DeviceType string

const (
	TypeLight      DeviceType = "light"
	TypeThermostat DeviceType = "thermostat"
	TypeHotWater   DeviceType = "hotWater"
	TypeSensor     DeviceType = "sensor"
	TypeSpeaker    DeviceType = "speaker"
)

// Device is one device in the unified view. ID is the service-scoped
// form "serviceId:nativeId", so devices from different vendors can
// never collide. State is the vendor's opaque per-type payload.
//
// Devices are derived transiently from live service data on every
// aggregation pass; they are never persisted.
type Device struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      DeviceType     `json:"type"`
	ServiceID string         `json:"service_id"`
	State     map[string]any `json:"state,omitempty"`
}

// Scene is a vendor scene surfaced in the room it belongs to.
type Scene struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ServiceID string `json:"service_id"`
}

// RoomStats are derived per-room statistics, computed at construction.
type RoomStats struct {
	TotalDevices int `json:"total_devices"`
	LightsOn     int `json:"lights_on"`

	// AverageBrightness is the mean brightness of the room's lights
	// that are on, rounded to an integer. Off lights are excluded;
	// a room with no lit lights averages 0.
	AverageBrightness int `json:"average_brightness"`
}

// Room is one canonical room with its devices, scenes, and stats.
type Room struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Devices []Device  `json:"devices"`
	Scenes  []Scene   `json:"scenes"`
	Stats   RoomStats `json:"stats"`
}

// Zone groups rooms for dashboard layout (e.g. "Upstairs"). Optional;
// a home with no zones is complete.
type Zone struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	RoomIDs []string `json:"room_ids"`
}

// Summary aggregates statistics across the whole home, computed at
// construction.
type Summary struct {
	TotalLights     int `json:"total_lights"`
	LightsOn        int `json:"lights_on"`
	RoomCount       int `json:"room_count"`
	SceneCount      int `json:"scene_count"`
	HomeDeviceCount int `json:"home_device_count"`
}

// Home is the complete unified snapshot served to dashboards. Devices
// holds home-level devices the vendor assigns to no room.
type Home struct {
	Rooms   []Room   `json:"rooms"`
	Devices []Device `json:"devices"`
	Zones   []Zone   `json:"zones"`
	Summary Summary  `json:"summary"`
}
