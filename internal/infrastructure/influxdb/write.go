package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteHomeSummary records one aggregation pass's summary metrics.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - demoMode: whether the snapshot came from demo plugins
//   - totalLights, lightsOn: light counts across all rooms
//   - roomCount, sceneCount, homeDeviceCount: remaining summary fields
//
// Example:
//
//	client.WriteHomeSummary(false, 12, 5, 6, 4, 2)
func (c *Client) WriteHomeSummary(demoMode bool, totalLights, lightsOn, roomCount, sceneCount, homeDeviceCount int) {
	if !c.IsConnected() {
		return
	}

	mode := "live"
	if demoMode {
		mode = "demo"
	}

	point := write.NewPoint(
		"home_summary",
		map[string]string{
			"mode": mode,
		},
		map[string]interface{}{
			"total_lights":      totalLights,
			"lights_on":         lightsOn,
			"room_count":        roomCount,
			"scene_count":       sceneCount,
			"home_device_count": homeDeviceCount,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteSessionStats records session manager statistics.
//
// Useful for charting active session counts over time.
func (c *Client) WriteSessionStats(activeSessions, pairedEndpoints int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"session_stats",
		nil,
		map[string]interface{}{
			"active_sessions":  activeSessions,
			"paired_endpoints": pairedEndpoints,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
