package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/hearthd/hearth-core/internal/infrastructure/mqtt"
	"github.com/hearthd/hearth-core/internal/roommap"
)

// roomView is a home room plus its service-room members.
type roomView struct {
	ID      string                   `json:"id"`
	Name    string                   `json:"name"`
	Members []roommap.ServiceRoomRef `json:"members"`
}

func (s *Server) roomView(hr roommap.HomeRoom) roomView {
	members := s.rooms.GetServiceRoomIDs(hr.ID)
	sort.Slice(members, func(i, j int) bool {
		return members[i].Key() < members[j].Key()
	})
	return roomView{ID: hr.ID, Name: hr.Name, Members: members}
}

// handleListRooms returns every home room and its members, orphaned
// rooms included.
func (s *Server) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	homeRooms := s.rooms.HomeRooms()
	sort.Slice(homeRooms, func(i, j int) bool { return homeRooms[i].ID < homeRooms[j].ID })

	views := make([]roomView, 0, len(homeRooms))
	for _, hr := range homeRooms {
		views = append(views, s.roomView(hr))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleGetRoom returns one home room with its members.
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	name, ok := s.rooms.GetRoomNameByID(id)
	if !ok {
		writeNotFound(w, "unknown home room: "+id)
		return
	}
	writeJSON(w, http.StatusOK, s.roomView(roommap.HomeRoom{ID: id, Name: name}))
}

type mappingRequest struct {
	ServiceID     string `json:"service_id"`
	ServiceRoomID string `json:"service_room_id"`
	Name          string `json:"name,omitempty"`
}

// handleCreateMapping maps a service room onto a home room, minting
// the home room on first sight. Idempotent; repeat calls return the
// established id.
func (s *Server) handleCreateMapping(w http.ResponseWriter, r *http.Request) {
	var req mappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.ServiceID == "" || req.ServiceRoomID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "service_id and service_room_id are required")
		return
	}

	homeRoomID, err := s.rooms.MapServiceRoom(r.Context(), req.ServiceID, req.ServiceRoomID, req.Name)
	if err != nil {
		s.logger.Error("room mapping failed", "error", err)
		writeInternalError(w, "room mapping failed")
		return
	}

	s.publishRoomMapping()

	name, _ := s.rooms.GetRoomNameByID(homeRoomID)
	writeJSON(w, http.StatusCreated, s.roomView(roommap.HomeRoom{ID: homeRoomID, Name: name}))
}

// handleGetMapping resolves one service room to its home room.
func (s *Server) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "serviceID")
	serviceRoomID := chi.URLParam(r, "serviceRoomID")

	homeRoomID, ok := s.rooms.GetHomeRoomID(serviceID, serviceRoomID)
	if !ok {
		writeNotFound(w, "unmapped service room: "+serviceID+":"+serviceRoomID)
		return
	}

	name, _ := s.rooms.GetRoomNameByID(homeRoomID)
	writeJSON(w, http.StatusOK, s.roomView(roommap.HomeRoom{ID: homeRoomID, Name: name}))
}

type mergeRequest struct {
	Refs             []roommap.ServiceRoomRef `json:"refs"`
	TargetHomeRoomID string                   `json:"target_home_room_id"`
}

// handleMergeRooms repoints the listed service rooms onto the target
// home room and publishes the new layout.
func (s *Server) handleMergeRooms(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if len(req.Refs) == 0 || req.TargetHomeRoomID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "refs and target_home_room_id are required")
		return
	}

	if err := s.rooms.MergeRooms(r.Context(), req.Refs, req.TargetHomeRoomID); err != nil {
		s.logger.Error("room merge failed", "error", err)
		writeInternalError(w, "room merge failed")
		return
	}

	name, _ := s.rooms.GetRoomNameByID(req.TargetHomeRoomID)
	view := s.roomView(roommap.HomeRoom{ID: req.TargetHomeRoomID, Name: name})

	s.publishRoomMapping()

	writeJSON(w, http.StatusOK, view)
}

type renameRequest struct {
	Name string `json:"name"`
}

// handleSetRoomName sets a home room's canonical name.
func (s *Server) handleSetRoomName(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "name is required")
		return
	}

	if _, ok := s.rooms.GetRoomNameByID(id); !ok {
		writeNotFound(w, "unknown home room: "+id)
		return
	}

	if err := s.rooms.SetRoomName(r.Context(), id, req.Name); err != nil {
		s.logger.Error("room rename failed", "error", err)
		writeInternalError(w, "room rename failed")
		return
	}

	s.publishRoomMapping()
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteMapping removes one service-room mapping. The home room
// and its other members remain.
func (s *Server) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "serviceID")
	serviceRoomID := chi.URLParam(r, "serviceRoomID")

	if err := s.rooms.DeleteMapping(r.Context(), serviceID, serviceRoomID); err != nil {
		s.logger.Error("mapping delete failed", "error", err)
		writeInternalError(w, "mapping delete failed")
		return
	}

	s.publishRoomMapping()
	w.WriteHeader(http.StatusNoContent)
}

// publishRoomMapping fans out the current room layout over MQTT so
// dashboards refresh without polling. Best-effort; mapping mutations
// never fail because the broker is down.
func (s *Server) publishRoomMapping() {
	if s.mqtt == nil {
		return
	}

	homeRooms := s.rooms.HomeRooms()
	sort.Slice(homeRooms, func(i, j int) bool { return homeRooms[i].ID < homeRooms[j].ID })

	views := make([]roomView, 0, len(homeRooms))
	for _, hr := range homeRooms {
		views = append(views, s.roomView(hr))
	}

	if err := s.mqtt.PublishJSON(mqtt.Topics{}.RoomMapping(), views, true); err != nil {
		s.logger.Warn("publishing room mapping failed", "error", err)
	}
}
