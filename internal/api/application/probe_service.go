package application

import (
	probesdomain "sysprobe/internal/probes/domain"
)

// ProbeService handles probe registry queries
type ProbeService struct {
	registry probesdomain.Registry
}

// NewProbeService creates a new probe service
func NewProbeService(registry probesdomain.Registry) *ProbeService {
	return &ProbeService{
		registry: registry,
	}
}

// ListProbes returns the registered probes and the number of running tasks
func (s *ProbeService) ListProbes() ProbesResponse {
	probes := s.registry.Probes()

	responses := make([]ProbeResponse, len(probes))
	for i, p := range probes {
		responses[i] = ToProbeResponse(p)
	}

	return ProbesResponse{
		Running: s.registry.Count(),
		Probes:  responses,
	}
}
