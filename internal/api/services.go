package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hearthd/hearth-core/internal/infrastructure/mqtt"
	"github.com/hearthd/hearth-core/internal/plugin"
	"github.com/hearthd/hearth-core/internal/reqctx"
)

// handleListServices returns metadata for every registered service.
func (s *Server) handleListServices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.GetAllMetadata())
}

// resolvePlugin looks up the request's plugin variant, writing the 503
// and returning nil when the service (or its demo variant) is absent.
func (s *Server) resolvePlugin(w http.ResponseWriter, r *http.Request) plugin.Plugin {
	serviceID := chi.URLParam(r, "serviceID")
	p := s.registry.Get(serviceID, reqctx.DemoMode(r.Context()))
	if p == nil {
		writeServiceUnavailable(w, serviceID)
	}
	return p
}

// handleServiceStatus returns the plugin's vendor status payload plus
// its connection snapshot.
func (s *Server) handleServiceStatus(w http.ResponseWriter, r *http.Request) {
	p := s.resolvePlugin(w, r)
	if p == nil {
		return
	}

	status, err := p.Status(r.Context())
	if err != nil {
		if errors.Is(err, plugin.ErrNotConnected) {
			writeError(w, http.StatusConflict, ErrCodeNotConnected, "service is not connected: "+p.ID())
			return
		}
		if errors.Is(err, plugin.ErrBridgeConnection) {
			writeError(w, http.StatusBadGateway, ErrCodeBridgeConnection, err.Error())
			return
		}
		s.logger.Error("service status failed", "service_id", p.ID(), "error", err)
		writeInternalError(w, "service status failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     status,
		"connection": p.ConnectionStatus(),
	})
}

type connectRequest struct {
	EndpointID    string `json:"endpoint_id"`
	CredentialRef string `json:"credential_ref,omitempty"`
}

// handleServiceConnect connects a plugin without touching stored
// credentials or sessions; the pairing endpoint owns those. Used to
// re-establish a dropped vendor connection.
func (s *Server) handleServiceConnect(w http.ResponseWriter, r *http.Request) {
	p := s.resolvePlugin(w, r)
	if p == nil {
		return
	}

	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := p.Connect(r.Context(), plugin.ConnectParams{
		EndpointID:    req.EndpointID,
		CredentialRef: req.CredentialRef,
	})
	if err != nil {
		if errors.Is(err, plugin.ErrBridgeConnection) {
			writeError(w, http.StatusBadGateway, ErrCodeBridgeConnection, err.Error())
			return
		}
		s.logger.Error("service connect failed", "service_id", p.ID(), "error", err)
		writeInternalError(w, "service connect failed")
		return
	}

	switch result.Outcome {
	case plugin.OutcomeRequires2FA:
		writeJSON(w, http.StatusAccepted, result)
	case plugin.OutcomeSuccess:
		s.publishServiceStatus(r, p)
		writeJSON(w, http.StatusOK, result)
	default:
		writeError(w, http.StatusBadGateway, ErrCodeBridgeConnection, result.Message)
	}
}

// handleServiceDisconnect drops the plugin's vendor connection.
func (s *Server) handleServiceDisconnect(w http.ResponseWriter, r *http.Request) {
	p := s.resolvePlugin(w, r)
	if p == nil {
		return
	}

	if err := p.Disconnect(r.Context()); err != nil {
		s.logger.Error("service disconnect failed", "service_id", p.ID(), "error", err)
		writeInternalError(w, "service disconnect failed")
		return
	}

	s.publishServiceStatus(r, p)
	w.WriteHeader(http.StatusNoContent)
}

// publishServiceStatus broadcasts a plugin's connection snapshot.
// Retained, so dashboards see current state on subscribe. Demo
// requests stay out of the shared topics.
func (s *Server) publishServiceStatus(r *http.Request, p plugin.Plugin) {
	if s.mqtt == nil || reqctx.DemoMode(r.Context()) {
		return
	}

	topic := mqtt.Topics{}.ServiceStatus(p.ID())
	if err := s.mqtt.PublishJSON(topic, p.ConnectionStatus(), true); err != nil {
		s.logger.Warn("publishing service status failed", "service_id", p.ID(), "error", err)
	}
}

// handlePluginRoute dispatches to the plugin's own sub-router,
// honoring the request's demo flag so a demo walkthrough exercises the
// demo instance's endpoints.
func (s *Server) handlePluginRoute(w http.ResponseWriter, r *http.Request) {
	p := s.resolvePlugin(w, r)
	if p == nil {
		return
	}

	// The nested mux routes on the RouteContext, not the URL path, so
	// the wildcard remainder has to become the new route path.
	rctx := chi.RouteContext(r.Context())
	rctx.RoutePath = "/" + rctx.URLParam("*")
	p.Router().ServeHTTP(w, r)
}
