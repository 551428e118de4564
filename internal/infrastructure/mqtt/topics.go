package mqtt

import "fmt"

// Topic prefixes for the Hearth event bus.
//
// All topics follow the scheme: hearth/{category}/{detail}
const (
	// TopicPrefix is the base for all Hearth topics.
	TopicPrefix = "hearth"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "hearth/system"
)

// Topics provides builders for Hearth MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// SystemStatus returns the topic for Hearth's online/offline status.
// Retained; also used as the LWT topic.
//
// Example: hearth/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// RoomMapping returns the topic for room mapping change events
// (map, merge, rename, delete).
//
// Example: hearth/rooms/mapping
func (Topics) RoomMapping() string {
	return TopicPrefix + "/rooms/mapping"
}

// HomeSummary returns the topic for aggregated home summary snapshots.
// Published retained after each aggregation pass.
//
// Example: hearth/home/summary
func (Topics) HomeSummary() string {
	return TopicPrefix + "/home/summary"
}

// ServiceStatus returns the topic for a vendor service's connection status.
//
// Example: hearth/services/lighting/status
func (Topics) ServiceStatus(serviceID string) string {
	return fmt.Sprintf("%s/services/%s/status", TopicPrefix, serviceID)
}
