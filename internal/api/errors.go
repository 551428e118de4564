package api

import (
	"encoding/json"
	"net/http"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest         = "bad_request"
	ErrCodeNotFound           = "not_found"
	ErrCodeInvalidSession     = "invalid_session"
	ErrCodePairingRequired    = "pairing_required"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeNotConnected       = "not_connected"
	ErrCodeBridgeConnection   = "bridge_connection_failed"
	ErrCodeValidation         = "validation_error"
	ErrCodeInternal           = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeInvalidSession writes the 401 that tells clients to
// re-authenticate.
func writeInvalidSession(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, ErrCodeInvalidSession, "session is missing, unknown, or expired")
}

// writeServiceUnavailable writes the 503 for unknown services and
// absent demo variants.
func writeServiceUnavailable(w http.ResponseWriter, serviceID string) {
	writeError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "service not available: "+serviceID)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}
