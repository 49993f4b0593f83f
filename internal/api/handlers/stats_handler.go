package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/chronicleberg/chronicle-be/internal/monitoring"
)

// StatsHandler exposes the admin platform-stats snapshot.
type StatsHandler struct {
	updater *monitoring.StatUpdater
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(updater *monitoring.StatUpdater) *StatsHandler {
	return &StatsHandler{updater: updater}
}

// Get collects and returns a fresh snapshot.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.updater.Collect(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to collect platform stats")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}
