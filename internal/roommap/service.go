package roommap

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Logger defines the logging interface used by the Service.
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

// Service maintains the bidirectional mapping between vendor room
// identifiers and canonical home rooms.
//
// The authoritative copy lives in SQLite; the service keeps a full
// in-memory mirror for lock-cheap lookups during aggregation. Every
// mutation persists first, then updates the mirror, so a crash can
// lose at most the mutation in flight, never corrupt the mirror.
//
// MapServiceRoom holds the write lock across its check-then-insert,
// persistence included. Two concurrent first-time mappings for the
// same service room therefore always converge on one home room id.
//
// All public methods are thread-safe.
type Service struct {
	repo Repository

	mu      sync.RWMutex
	forward map[string]string                    // "serviceId:serviceRoomId" -> homeRoomID
	reverse map[string]map[string]ServiceRoomRef // homeRoomID -> key -> ref
	names   map[string]string                    // homeRoomID -> display name

	initialized bool
	logger      Logger
}

// NewService creates a room mapping service over the given repository.
// Call Initialize before use.
func NewService(repo Repository) *Service {
	return &Service{
		repo:    repo,
		forward: make(map[string]string),
		reverse: make(map[string]map[string]ServiceRoomRef),
		names:   make(map[string]string),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(logger Logger) {
	s.logger = logger
}

// Initialize hydrates the in-memory mirror from storage. Idempotent;
// repeat calls after the first are no-ops.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	rooms, mappings, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("initializing room mappings: %w", err)
	}

	for _, hr := range rooms {
		s.names[hr.ID] = hr.Name
	}
	for _, m := range mappings {
		ref := ServiceRoomRef{ServiceID: m.ServiceID, ServiceRoomID: m.ServiceRoomID}
		s.addLocked(ref, m.HomeRoomID)
	}

	s.initialized = true
	s.logger.Info("room mappings loaded", "home_rooms", len(rooms), "mappings", len(mappings))
	return nil
}

// MapServiceRoom resolves a service room to its home room, creating
// the home room on first sight. Repeat calls for the same service room
// return the same home room id; the display name from the first call
// wins and later ones are ignored.
func (s *Service) MapServiceRoom(ctx context.Context, serviceID, serviceRoomID, displayName string) (string, error) {
	ref := ServiceRoomRef{ServiceID: serviceID, ServiceRoomID: serviceRoomID}
	if err := ref.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if homeRoomID, ok := s.forward[ref.Key()]; ok {
		return homeRoomID, nil
	}

	room := HomeRoom{
		ID:   "hr-" + uuid.NewString(),
		Name: displayName,
	}
	if err := s.repo.CreateMapping(ctx, room, ref); err != nil {
		return "", err
	}

	s.addLocked(ref, room.ID)
	s.names[room.ID] = room.Name

	s.logger.Debug("service room mapped",
		"service_room", ref.Key(), "home_room_id", room.ID)
	return room.ID, nil
}

// GetHomeRoomID returns the home room a service room maps to, or
// ("", false) when the service room is unmapped.
func (s *Service) GetHomeRoomID(serviceID, serviceRoomID string) (string, bool) {
	ref := ServiceRoomRef{ServiceID: serviceID, ServiceRoomID: serviceRoomID}

	s.mu.RLock()
	defer s.mu.RUnlock()

	homeRoomID, ok := s.forward[ref.Key()]
	return homeRoomID, ok
}

// GetServiceRoomIDs returns every service room mapped onto a home
// room, in no particular order. Unknown home rooms yield an empty
// slice, not an error.
func (s *Service) GetServiceRoomIDs(homeRoomID string) []ServiceRoomRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := s.reverse[homeRoomID]
	refs := make([]ServiceRoomRef, 0, len(members))
	for _, ref := range members {
		refs = append(refs, ref)
	}
	return refs
}

// MergeRooms repoints every listed service room onto the target home
// room, regardless of prior assignment. Home rooms that lose all their
// members are left in place; they simply stop appearing in aggregated
// output.
func (s *Service) MergeRooms(ctx context.Context, refs []ServiceRoomRef, targetHomeRoomID string) error {
	if targetHomeRoomID == "" {
		return fmt.Errorf("roommap: merge target is required")
	}
	for _, ref := range refs {
		if err := ref.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Merge(ctx, refs, targetHomeRoomID); err != nil {
		return err
	}

	for _, ref := range refs {
		s.removeLocked(ref)
		s.addLocked(ref, targetHomeRoomID)
	}
	if _, ok := s.names[targetHomeRoomID]; !ok {
		s.names[targetHomeRoomID] = ""
	}

	s.logger.Info("rooms merged",
		"count", len(refs), "target_home_room_id", targetHomeRoomID)
	return nil
}

// SetRoomName sets a home room's canonical name. Renaming an unknown
// home room is a no-op.
func (s *Service) SetRoomName(ctx context.Context, homeRoomID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.names[homeRoomID]; !ok {
		return nil
	}

	if err := s.repo.SetName(ctx, homeRoomID, name); err != nil {
		return err
	}
	s.names[homeRoomID] = name
	return nil
}

// GetRoomNameByID returns a home room's canonical name, or ("", false)
// for an unknown id.
func (s *Service) GetRoomNameByID(homeRoomID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.names[homeRoomID]
	return name, ok
}

// DeleteMapping removes one forward entry. Other service rooms on the
// same home room keep their mapping. Deleting an unmapped service room
// is a no-op.
func (s *Service) DeleteMapping(ctx context.Context, serviceID, serviceRoomID string) error {
	ref := ServiceRoomRef{ServiceID: serviceID, ServiceRoomID: serviceRoomID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.forward[ref.Key()]; !ok {
		return nil
	}

	if err := s.repo.DeleteMapping(ctx, ref); err != nil {
		return err
	}
	s.removeLocked(ref)

	s.logger.Debug("room mapping deleted", "service_room", ref.Key())
	return nil
}

// HomeRooms returns a snapshot of every known home room, orphans
// included.
func (s *Service) HomeRooms() []HomeRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]HomeRoom, 0, len(s.names))
	for id, name := range s.names {
		rooms = append(rooms, HomeRoom{ID: id, Name: name})
	}
	return rooms
}

// Reset clears all mapping state, storage included. Test isolation
// only; real deployments never call this.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Reset(ctx); err != nil {
		return err
	}

	s.forward = make(map[string]string)
	s.reverse = make(map[string]map[string]ServiceRoomRef)
	s.names = make(map[string]string)
	s.initialized = false
	return nil
}

// addLocked inserts a forward and reverse entry. Caller holds mu.
func (s *Service) addLocked(ref ServiceRoomRef, homeRoomID string) {
	s.forward[ref.Key()] = homeRoomID
	if s.reverse[homeRoomID] == nil {
		s.reverse[homeRoomID] = make(map[string]ServiceRoomRef)
	}
	s.reverse[homeRoomID][ref.Key()] = ref
}

// removeLocked drops a forward entry and its reverse index slot.
// Caller holds mu.
func (s *Service) removeLocked(ref ServiceRoomRef) {
	homeRoomID, ok := s.forward[ref.Key()]
	if !ok {
		return
	}
	delete(s.forward, ref.Key())
	if members := s.reverse[homeRoomID]; members != nil {
		delete(members, ref.Key())
		if len(members) == 0 {
			delete(s.reverse, homeRoomID)
		}
	}
}
