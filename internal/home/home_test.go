package home

import (
	"errors"
	"testing"
)

func light(id string, on bool, brightness int) Device {
	return Device{
		ID: "lighting:" + id, Name: id, Type: TypeLight, ServiceID: "lighting",
		State: map[string]any{"on": on, "brightness": brightness},
	}
}

func TestNewRoom_Validation(t *testing.T) {
	if _, err := NewRoom("", "Lounge", nil, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("NewRoom(no id) error = %v, want ErrValidation", err)
	}
	if _, err := NewRoom("hr-1", "", nil, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("NewRoom(no name) error = %v, want ErrValidation", err)
	}
}

func TestNewRoom_Stats(t *testing.T) {
	room, err := NewRoom("hr-1", "Lounge", []Device{
		light("l-1", true, 100),
		light("l-2", true, 50),
		light("l-3", false, 80),
	}, nil)
	if err != nil {
		t.Fatalf("NewRoom() error = %v", err)
	}

	if room.Stats.TotalDevices != 3 {
		t.Errorf("TotalDevices = %d, want 3", room.Stats.TotalDevices)
	}
	if room.Stats.LightsOn != 2 {
		t.Errorf("LightsOn = %d, want 2", room.Stats.LightsOn)
	}
	// Mean over lit lights only: (100 + 50) / 2, the off light at 80
	// does not participate.
	if room.Stats.AverageBrightness != 75 {
		t.Errorf("AverageBrightness = %d, want 75", room.Stats.AverageBrightness)
	}
}

func TestNewRoom_StatsRounding(t *testing.T) {
	room, err := NewRoom("hr-1", "Lounge", []Device{
		light("l-1", true, 100),
		light("l-2", true, 33),
		light("l-3", true, 33),
	}, nil)
	if err != nil {
		t.Fatalf("NewRoom() error = %v", err)
	}
	// 166/3 = 55.33 rounds to 55.
	if room.Stats.AverageBrightness != 55 {
		t.Errorf("AverageBrightness = %d, want 55", room.Stats.AverageBrightness)
	}
}

func TestNewRoom_NoLitLights(t *testing.T) {
	room, err := NewRoom("hr-1", "Lounge", []Device{
		light("l-1", false, 80),
		{ID: "heating:t-1", Name: "Stat", Type: TypeThermostat, ServiceID: "heating"},
	}, nil)
	if err != nil {
		t.Fatalf("NewRoom() error = %v", err)
	}
	if room.Stats.LightsOn != 0 || room.Stats.AverageBrightness != 0 {
		t.Errorf("stats = %+v, want zero lights on and zero average", room.Stats)
	}
}

func TestNewRoom_NormalizesNilSlices(t *testing.T) {
	room, err := NewRoom("hr-1", "Lounge", nil, nil)
	if err != nil {
		t.Fatalf("NewRoom() error = %v", err)
	}
	if room.Devices == nil || room.Scenes == nil {
		t.Error("nil device/scene slices not normalized to empty")
	}
}

func TestCalculateHomeSummary(t *testing.T) {
	lounge, _ := NewRoom("hr-1", "Lounge", []Device{
		light("l-1", true, 100),
		light("l-2", true, 50),
		light("l-3", false, 80),
	}, []Scene{
		{ID: "s-1", Name: "Movie Night", ServiceID: "lighting"},
		{ID: "s-2", Name: "Bright", ServiceID: "lighting"},
	})
	kitchen, _ := NewRoom("hr-2", "Kitchen", []Device{
		light("l-4", true, 75),
		{ID: "heating:t-1", Name: "Stat", Type: TypeThermostat, ServiceID: "heating"},
	}, []Scene{
		{ID: "s-3", Name: "Cooking", ServiceID: "lighting"},
	})

	homeDevices := []Device{
		light("l-5", false, 0),
		{ID: "heating:hw-1", Name: "Hot Water", Type: TypeHotWater, ServiceID: "heating"},
	}

	s := CalculateHomeSummary([]Room{*lounge, *kitchen}, homeDevices)

	// Light totals span rooms only; the home-level off light is not a
	// room light.
	if s.TotalLights != 4 {
		t.Errorf("TotalLights = %d, want 4", s.TotalLights)
	}
	if s.LightsOn != 3 {
		t.Errorf("LightsOn = %d, want 3", s.LightsOn)
	}
	if s.RoomCount != 2 {
		t.Errorf("RoomCount = %d, want 2", s.RoomCount)
	}
	if s.SceneCount != 3 {
		t.Errorf("SceneCount = %d, want 3", s.SceneCount)
	}
	if s.HomeDeviceCount != 2 {
		t.Errorf("HomeDeviceCount = %d, want 2", s.HomeDeviceCount)
	}
}

func TestCalculateHomeSummary_Empty(t *testing.T) {
	s := CalculateHomeSummary(nil, nil)
	if s != (Summary{}) {
		t.Errorf("CalculateHomeSummary(nil, nil) = %+v, want zero summary", s)
	}
}

func TestNewHome(t *testing.T) {
	lounge, _ := NewRoom("hr-1", "Lounge", []Device{light("l-1", true, 100)}, nil)

	h := NewHome([]Room{*lounge}, nil, nil)
	if h.Devices == nil || h.Zones == nil {
		t.Error("nil slices not normalized to empty")
	}
	if h.Summary.TotalLights != 1 || h.Summary.RoomCount != 1 {
		t.Errorf("Summary = %+v", h.Summary)
	}
}

func TestBrightness_JSONNumbers(t *testing.T) {
	// Decoded JSON delivers float64 where fixtures deliver int; both
	// must count.
	room, err := NewRoom("hr-1", "Lounge", []Device{
		{ID: "lighting:l-1", Name: "a", Type: TypeLight, ServiceID: "lighting",
			State: map[string]any{"on": true, "brightness": float64(40)}},
		{ID: "lighting:l-2", Name: "b", Type: TypeLight, ServiceID: "lighting",
			State: map[string]any{"on": true, "brightness": 60}},
	}, nil)
	if err != nil {
		t.Fatalf("NewRoom() error = %v", err)
	}
	if room.Stats.AverageBrightness != 50 {
		t.Errorf("AverageBrightness = %d, want 50", room.Stats.AverageBrightness)
	}
}
