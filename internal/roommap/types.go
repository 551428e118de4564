package roommap

import "fmt"

// ServiceRoomRef identifies one room in one vendor service's own
// identifier space.
type ServiceRoomRef struct {
	ServiceID     string `json:"service_id"`
	ServiceRoomID string `json:"service_room_id"`
}

// Key returns the canonical "serviceId:serviceRoomId" form used as the
// forward-map key.
func (r ServiceRoomRef) Key() string {
	return r.ServiceID + ":" + r.ServiceRoomID
}

func (r ServiceRoomRef) String() string {
	return r.Key()
}

// Validate checks that both parts of the reference are present.
func (r ServiceRoomRef) Validate() error {
	if r.ServiceID == "" || r.ServiceRoomID == "" {
		return fmt.Errorf("roommap: incomplete service room reference %q", r.Key())
	}
	return nil
}

// HomeRoom is a canonical room identity owned by Hearth rather than by
// any vendor. Its ID is stable across vendor API renames; its name is
// the user-facing label shown on the dashboard.
type HomeRoom struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Mapping is one persisted forward entry from a service room to a home
// room.
type Mapping struct {
	ServiceID     string `json:"service_id"`
	ServiceRoomID string `json:"service_room_id"`
	HomeRoomID    string `json:"home_room_id"`
}
