package application

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"sysprobe/internal/probes/domain"
	"sysprobe/pkg/utils"
)

// ProbeInstance represents a scheduled probe in the application layer
type ProbeInstance struct {
	ID     utils.EntityID
	Probe  domain.Probe
	Config domain.ProbeConfig
	RawCfg []byte

	RunID     string
	StartedAt time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewProbeInstance creates a new probe instance
func NewProbeInstance(id utils.EntityID, probe domain.Probe, cfg domain.ProbeConfig, rawCfg []byte) *ProbeInstance {
	return &ProbeInstance{
		ID:     id,
		Probe:  probe,
		Config: cfg,
		RawCfg: rawCfg,
	}
}

// Info describes the instance for the registry
func (p *ProbeInstance) Info() domain.ProbeInfo {
	return domain.ProbeInfo{
		ID:        p.ID.Canonical(),
		Name:      p.Config.Name,
		Type:      p.Config.Type,
		Interval:  p.Config.Interval.Std(),
		RunID:     p.RunID,
		StartedAt: p.StartedAt,
	}
}

// Eq reports whether other was built from the same configuration
func (p *ProbeInstance) Eq(other *ProbeInstance) bool {
	if p.ID.Canonical() != other.ID.Canonical() {
		return false
	}
	return compactEqual(p.RawCfg, other.RawCfg)
}

// ConfigDiff represents the difference between the running and the new probe set
type ConfigDiff struct {
	Add    []string
	Update []string
	Delete []string
	Keep   []string
}

func compactEqual(a, b []byte) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
