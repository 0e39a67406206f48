package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fourstack/dropfour/internal/api/apierr"
	"github.com/fourstack/dropfour/internal/api/response"
	"github.com/fourstack/dropfour/internal/storage"
)

// StatsHandler serves cross-session participant counters
type StatsHandler struct {
	archive storage.Archive
}

// NewStatsHandler creates a stats handler
func NewStatsHandler(archive storage.Archive) *StatsHandler {
	return &StatsHandler{archive: archive}
}

// Get handles GET /stats/{handle}
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]

	stats, err := h.archive.GetStats(r.Context(), handle)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Stats{Stats: stats})
}
