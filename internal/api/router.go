package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.demoModeMiddleware)

		// Health check (no session required)
		r.Get("/health", s.handleHealth)

		// Session bootstrap (no session required)
		r.Post("/sessions", s.handleCreateSession)
		r.Post("/sessions/pair", s.handlePair)

		// Vendor-specific sub-routes (e.g. 2FA verification) must stay
		// reachable mid-pairing, before any session exists.
		r.HandleFunc("/services/{serviceID}/plugin/*", s.handlePluginRoute)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)

			// Registered as explicit paths: a subrouter mounted at
			// /sessions would shadow the method-specific bootstrap
			// registrations above.
			r.Get("/sessions/current", s.handleCurrentSession)
			r.Delete("/sessions/current", s.handleRevokeSession)
			r.Get("/sessions/stats", s.handleSessionStats)

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", s.handleListRooms)
				r.Post("/merge", s.handleMergeRooms)
				r.Post("/mappings", s.handleCreateMapping)
				r.Get("/mappings/{serviceID}/{serviceRoomID}", s.handleGetMapping)
				r.Delete("/mappings/{serviceID}/{serviceRoomID}", s.handleDeleteMapping)
				r.Get("/{id}", s.handleGetRoom)
				r.Put("/{id}/name", s.handleSetRoomName)
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", s.handleListServices)
				r.Route("/{serviceID}", func(r chi.Router) {
					r.Get("/status", s.handleServiceStatus)
					r.Post("/connect", s.handleServiceConnect)
					r.Post("/disconnect", s.handleServiceDisconnect)
				})
			})

			r.Get("/home", s.handleGetHome)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
