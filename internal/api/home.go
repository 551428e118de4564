package api

import (
	"errors"
	"net/http"

	"github.com/hearthd/hearth-core/internal/infrastructure/mqtt"
	"github.com/hearthd/hearth-core/internal/plugin"
	"github.com/hearthd/hearth-core/internal/reqctx"
)

// handleGetHome assembles and returns the unified Home snapshot. The
// request's demo flag transparently selects demo plugin data.
func (s *Server) handleGetHome(w http.ResponseWriter, r *http.Request) {
	h, err := s.builder.Build(r.Context())
	if err != nil {
		if errors.Is(err, plugin.ErrBridgeConnection) {
			writeError(w, http.StatusBadGateway, ErrCodeBridgeConnection, err.Error())
			return
		}
		s.logger.Error("home aggregation failed", "error", err)
		writeInternalError(w, "home aggregation failed")
		return
	}

	demoMode := reqctx.DemoMode(r.Context())

	if s.influx != nil {
		s.influx.WriteHomeSummary(demoMode,
			h.Summary.TotalLights, h.Summary.LightsOn, h.Summary.RoomCount,
			h.Summary.SceneCount, h.Summary.HomeDeviceCount)
	}

	// Retained summary lets late-joining dashboards render instantly.
	// Live snapshots only; demo requests stay out of the shared topic.
	if s.mqtt != nil && !demoMode {
		if err := s.mqtt.PublishJSON(mqtt.Topics{}.HomeSummary(), h.Summary, true); err != nil {
			s.logger.Warn("publishing home summary failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, h)
}
