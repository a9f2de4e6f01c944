package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sysprobe/internal/probes/domain"
	"sysprobe/pkg/utils"
)

// BandwidthProbe derives per-interface rates from cumulative netstat counters.
// The counter state lives as long as the probe and is only touched by its task.
type BandwidthProbe struct {
	ID     utils.EntityID
	cfg    domain.ProbeConfig
	runner domain.CommandRunner
	now    func() time.Time

	state domain.BandwidthState
}

func newBandwidthProbe(runner domain.CommandRunner) *BandwidthProbe {
	return &BandwidthProbe{
		runner: runner,
		now:    time.Now,
	}
}

// Run samples the counters. The first sample only primes the state.
func (p *BandwidthProbe) Run(ctx context.Context) (domain.Value, error) {
	output, err := p.runner.Run(ctx, p.cfg.CommandOrDefault())
	if err != nil {
		return domain.Value{}, fmt.Errorf("probe %s: %w", p.cfg.Name, err)
	}

	sample := domain.CounterSample{
		Timestamp: p.now(),
		Counters:  domain.ParseInterfaceCounters(output),
	}
	value, ok := p.state.Observe(sample)
	if !ok {
		return domain.Value{}, domain.ErrSkip
	}
	return value, nil
}

// Configure configures the bandwidth probe with the given ID and raw config
func (p *BandwidthProbe) Configure(id utils.EntityID, rawCfg []byte) error {
	var cfg domain.ProbeConfig
	if err := json.Unmarshal(rawCfg, &cfg); err != nil {
		return err
	}

	p.ID = id
	p.cfg = cfg
	return nil
}

func (p *BandwidthProbe) Default() domain.Value {
	return domain.EmptyMapping()
}
