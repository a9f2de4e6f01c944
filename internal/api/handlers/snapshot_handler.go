package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	api "sysprobe/internal/api/application"
)

// SnapshotHandler serves the latest probe values
type SnapshotHandler struct {
	service *api.SnapshotService
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(service *api.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		service: service,
	}
}

// ListSnapshot handles GET /api/v1/snapshot
// @Summary      List snapshot
// @Description  The latest value of every probe, sorted by probe name
// @Tags         snapshot
// @Produce      json
// @Success      200  {array}   application.SnapshotEntryResponse
// @Security     ApiKeyAuth
// @Router       /snapshot [get]
func (h *SnapshotHandler) ListSnapshot(w http.ResponseWriter, r *http.Request) {
	entries := h.service.ListEntries()
	getLogger(r).Debug("Listed snapshot", "count", len(entries))
	respondJSON(w, http.StatusOK, entries)
}

// GetSnapshot handles GET /api/v1/snapshot/{name}
// @Summary      Get snapshot entry
// @Description  The latest value of one probe
// @Tags         snapshot
// @Produce      json
// @Param        name  path      string  true  "Probe name"
// @Success      200   {object}  application.SnapshotEntryResponse
// @Failure      404   {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /snapshot/{name} [get]
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	entry, err := h.service.GetEntry(name)
	if errors.Is(err, api.ErrEntryNotFound) {
		respondJSONError(w, http.StatusNotFound, "No probe named "+name)
		return
	} else if err != nil {
		getLogger(r).Error("Failed to get snapshot entry", "probe", name, "err", err)
		respondJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, entry)
}
