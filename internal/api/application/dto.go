package application

import (
	"encoding/json"
	"time"

	"github.com/dustin/go-humanize"

	probesdomain "sysprobe/internal/probes/domain"
)

// SnapshotEntryResponse represents a snapshot entry in API responses
type SnapshotEntryResponse struct {
	Name      string             `json:"name"`
	ProbeID   string             `json:"probe_id"`
	Type      string             `json:"type"`
	Value     probesdomain.Value `json:"value"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
	Age       string             `json:"age,omitempty"`
	Runs      int64              `json:"runs"`
	Failures  int64              `json:"failures"`
	LastError string             `json:"last_error,omitempty"`
}

// ProbeResponse represents a registered probe in API responses
type ProbeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Interval  string    `json:"interval"`
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
}

// ProbesResponse is the probe registry with its running task count
type ProbesResponse struct {
	Running int             `json:"running"`
	Probes  []ProbeResponse `json:"probes"`
}

// LoadConfigRequest represents the configuration payload
type LoadConfigRequest struct {
	Config json.RawMessage `json:"config"`
}

// ErrorResponse represents an error in API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToSnapshotEntryResponse converts a snapshot entry to an API response.
// Entries that were never updated carry no timestamp or age.
func ToSnapshotEntryResponse(e probesdomain.Entry, now time.Time) SnapshotEntryResponse {
	resp := SnapshotEntryResponse{
		Name:      e.Name,
		ProbeID:   e.ProbeID,
		Type:      e.Type,
		Value:     e.Value,
		Runs:      e.Runs,
		Failures:  e.Failures,
		LastError: e.LastError,
	}
	if !e.UpdatedAt.IsZero() {
		updatedAt := e.UpdatedAt
		resp.UpdatedAt = &updatedAt
		resp.Age = humanize.RelTime(updatedAt, now, "ago", "from now")
	}
	return resp
}

// ToProbeResponse converts registry info to an API response
func ToProbeResponse(p probesdomain.ProbeInfo) ProbeResponse {
	return ProbeResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		Interval:  p.Interval.String(),
		RunID:     p.RunID,
		StartedAt: p.StartedAt,
	}
}
