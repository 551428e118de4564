package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hearthd/hearth-core/internal/plugin"
	"github.com/hearthd/hearth-core/internal/reqctx"
)

type createSessionRequest struct {
	EndpointID string `json:"endpoint_id"`
}

// handleCreateSession issues a session for an endpoint that has paired
// before. Endpoints without a stored credential get a 404 telling the
// client to run the pairing flow first.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.EndpointID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "endpoint_id is required")
		return
	}

	ref, found, err := s.sessions.GetCredentials(r.Context(), req.EndpointID)
	if err != nil {
		s.logger.Error("credential lookup failed", "error", err)
		writeInternalError(w, "credential lookup failed")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, ErrCodePairingRequired,
			"endpoint has not been paired: "+req.EndpointID)
		return
	}

	sess := s.sessions.CreateSession(req.EndpointID, ref)
	writeJSON(w, http.StatusCreated, sess)
}

type pairRequest struct {
	ServiceID  string `json:"service_id"`
	EndpointID string `json:"endpoint_id"`
}

// handlePair runs the first-time pairing flow: connect the service
// plugin, store the credential it mints, and issue a session in one
// round trip. A 2FA challenge pauses the flow; the client completes it
// through the plugin's own sub-routes and then retries.
func (s *Server) handlePair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.ServiceID == "" || req.EndpointID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "service_id and endpoint_id are required")
		return
	}

	p := s.registry.Get(req.ServiceID, reqctx.DemoMode(r.Context()))
	if p == nil {
		writeServiceUnavailable(w, req.ServiceID)
		return
	}

	result, err := p.Connect(r.Context(), plugin.ConnectParams{EndpointID: req.EndpointID})
	if err != nil {
		if errors.Is(err, plugin.ErrBridgeConnection) {
			writeError(w, http.StatusBadGateway, ErrCodeBridgeConnection, err.Error())
			return
		}
		s.logger.Error("pairing failed", "service_id", req.ServiceID, "error", err)
		writeInternalError(w, "pairing failed")
		return
	}

	switch result.Outcome {
	case plugin.OutcomeRequires2FA:
		writeJSON(w, http.StatusAccepted, result)

	case plugin.OutcomeSuccess:
		if err := s.sessions.StoreCredentials(r.Context(), req.EndpointID, result.CredentialRef); err != nil {
			s.logger.Error("storing pairing credential failed", "error", err)
			writeInternalError(w, "storing credential failed")
			return
		}
		sess := s.sessions.CreateSession(req.EndpointID, result.CredentialRef)
		s.publishServiceStatus(r, p)
		writeJSON(w, http.StatusCreated, map[string]any{
			"outcome": result.Outcome,
			"session": sess,
		})

	default:
		writeError(w, http.StatusBadGateway, ErrCodeBridgeConnection, result.Message)
	}
}

// handleCurrentSession returns the session resolved by the middleware.
func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if sess == nil {
		// Demo requests carry no session.
		writeNotFound(w, "no session for demo requests")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// handleRevokeSession revokes the caller's own session. Idempotent.
func (s *Server) handleRevokeSession(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r.Context()); sess != nil {
		s.sessions.RevokeSession(sess.Token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionStats reports session counts for monitoring, and feeds
// the stats history when InfluxDB is wired.
func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	stats := s.sessions.Stats()

	paired, err := s.sessions.PairedEndpointCount(r.Context())
	if err != nil {
		s.logger.Error("counting paired endpoints failed", "error", err)
		writeInternalError(w, "stats lookup failed")
		return
	}

	if s.influx != nil {
		s.influx.WriteSessionStats(stats.ActiveSessions, paired)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"active_sessions":  stats.ActiveSessions,
		"unique_endpoints": stats.UniqueEndpoints,
		"paired_endpoints": paired,
	})
}
