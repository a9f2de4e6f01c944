package handlers

import (
	"net/http"

	api "sysprobe/internal/api/application"
)

// ProbeHandler serves the probe registry
type ProbeHandler struct {
	service *api.ProbeService
}

// NewProbeHandler creates a new probe handler
func NewProbeHandler(service *api.ProbeService) *ProbeHandler {
	return &ProbeHandler{
		service: service,
	}
}

// ListProbes handles GET /api/v1/probes
// @Summary      List probes
// @Description  The registered probes and the number of running probe tasks
// @Tags         probes
// @Produce      json
// @Success      200  {object}  application.ProbesResponse
// @Security     ApiKeyAuth
// @Router       /probes [get]
func (h *ProbeHandler) ListProbes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.ListProbes())
}
