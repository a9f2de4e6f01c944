package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"sysprobe/internal/probes/domain"
	sharedlogger "sysprobe/internal/shared/logger"
	"sysprobe/internal/shared/validation"
)

var _ domain.Registry = (*Service)(nil)

// Service schedules one independent task per configured probe
type Service struct {
	logger   sharedlogger.Logger
	runner   domain.CommandRunner
	snapshot *Snapshot

	mu sync.RWMutex
	// Probe name to probe instance
	probes map[string]*ProbeInstance

	wg     sync.WaitGroup
	active atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a new probe service publishing into snapshot
func NewService(logger sharedlogger.Logger, runner domain.CommandRunner, snapshot *Snapshot) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		logger:   logger,
		runner:   runner,
		snapshot: snapshot,
		probes:   make(map[string]*ProbeInstance),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// LoadProbes applies a probe configuration. Every probe is built and
// validated before anything changes. New probes are started, probes with a
// changed configuration are restarted with fresh state, removed probes are
// stopped and their snapshot entries deleted. Unchanged probes keep running.
func (s *Service) LoadProbes(ctx context.Context, instance string, rawConfigs []json.RawMessage) (ConfigDiff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var diff ConfigDiff
	if s.ctx.Err() != nil {
		return diff, errors.New("probe service is stopped")
	}

	s.logger.Debug("Loading probes", "instance", instance, "probe_count", len(rawConfigs))

	newProbes, err := s.buildAll(instance, rawConfigs)
	if err != nil {
		s.logger.Error("Failed to build probes", "instance", instance, "err", err)
		return diff, err
	}

	// Remove probes that are no longer in config
	for name := range s.probes {
		if _, ok := newProbes[name]; !ok {
			diff.Delete = append(diff.Delete, name)
		}
	}
	for name, inst := range newProbes {
		old, ok := s.probes[name]
		switch {
		case !ok:
			diff.Add = append(diff.Add, name)
		case old.Eq(inst):
			diff.Keep = append(diff.Keep, name)
		default:
			diff.Update = append(diff.Update, name)
		}
	}
	sort.Strings(diff.Add)
	sort.Strings(diff.Update)
	sort.Strings(diff.Delete)
	sort.Strings(diff.Keep)

	for _, name := range diff.Delete {
		s.logger.Debug("Stopping probe (removed from config)", "probe", name)
		s.stopInstanceUnsynced(name)
		delete(s.probes, name)
		s.snapshot.Delete(ctx, name)
	}

	for _, name := range diff.Update {
		s.logger.Debug("Restarting probe (config changed)", "probe", name)
		s.stopInstanceUnsynced(name)
	}

	for _, name := range append(diff.Add, diff.Update...) {
		inst := newProbes[name]

		ctx, cancel := context.WithCancel(s.ctx)
		inst.ctx = ctx
		inst.cancel = cancel
		inst.RunID = uuid.NewString()
		inst.StartedAt = time.Now()

		s.probes[name] = inst
		s.snapshot.Register(ctx, inst.ID.Canonical(), name, inst.Config.Type, inst.Probe.Default())
		s.startInstanceUnsynced(name)
		s.logger.Debug("Started probe", "probe_id", inst.ID.Canonical(), "run_id", inst.RunID, "interval", inst.Config.Interval)
	}

	s.logger.Info("Probes loaded",
		"instance", instance,
		"added", len(diff.Add),
		"restarted", len(diff.Update),
		"removed", len(diff.Delete),
		"unchanged", len(diff.Keep),
	)
	return diff, nil
}

// Stop stops all probes and waits for their tasks to return
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.logger.Debug("Stopping probe service", "probe_count", len(s.probes))
	s.cancel()
	for name := range s.probes {
		s.stopInstanceUnsynced(name)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Stop timeout exceeded", "err", ctx.Err())
		return ctx.Err()
	case <-done:
		s.logger.Debug("Probe service stopped")
		return nil
	}
}

// Count returns the number of probe tasks currently running
func (s *Service) Count() int {
	return int(s.active.Load())
}

// Probes lists the registered probes sorted by name
func (s *Service) Probes() []domain.ProbeInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ProbeInfo, 0, len(s.probes))
	for _, inst := range s.probes {
		result = append(result, inst.Info())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func (s *Service) buildAll(instance string, rawConfigs []json.RawMessage) (map[string]*ProbeInstance, error) {
	result := make(map[string]*ProbeInstance)

	for i, rawProbeCfg := range rawConfigs {
		id, cfg, probe, err := BuildProbe(instance, rawProbeCfg, s.runner, s.snapshot)
		var nnerr *validation.NoNameError
		if errors.As(err, &nnerr) {
			nnerr.SetIndex(i)
			return nil, nnerr
		} else if err != nil {
			return nil, err
		}

		if _, exists := result[cfg.Name]; exists {
			return nil, validation.NewDuplicateFoundError(instance, "probes", fmt.Sprint(i))
		}

		result[cfg.Name] = NewProbeInstance(id, probe, cfg, rawProbeCfg)
	}

	return result, nil
}

func (s *Service) startInstanceUnsynced(name string) {
	inst := s.probes[name]
	inst.running = true
	s.wg.Add(1)
	s.active.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.active.Add(-1)
		s.runProbe(inst)
	}()
}

func (s *Service) stopInstanceUnsynced(name string) {
	inst := s.probes[name]
	if !inst.running {
		return
	}
	inst.cancel()
	inst.running = false
}

// runProbe runs the first cycle right away, then one cycle per tick.
// Ticks that fire while a cycle is still running are dropped by the ticker.
func (s *Service) runProbe(inst *ProbeInstance) {
	interval := inst.Config.Interval.Std()

	s.logger.Debug("Probe task started", "probe_id", inst.ID.Canonical(), "run_id", inst.RunID, "interval", interval)
	s.runCycle(inst)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runCycle(inst)
		case <-inst.ctx.Done():
			s.logger.Debug("Probe task stopped", "probe_id", inst.ID.Canonical(), "run_id", inst.RunID)
			return
		}
	}
}

func (s *Service) runCycle(inst *ProbeInstance) {
	ctx := inst.ctx
	if timeout := inst.Config.Timeout.Std(); timeout > 0 && !timeoutPerTarget(inst.Probe) {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	value, err := inst.Probe.Run(ctx)

	// torn down while running, the replacement owns the entry now
	if inst.ctx.Err() != nil {
		return
	}

	name := inst.Config.Name
	switch {
	case errors.Is(err, domain.ErrSkip):
		return
	case err != nil:
		s.logger.Debug("Probe execution error", "probe_id", inst.ID.Canonical(), "err", err)
		if err := s.snapshot.RecordFailure(inst.ctx, name, err); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("Failed to record probe failure", "probe_id", inst.ID.Canonical(), "err", err)
		}
		return
	}

	if err := s.snapshot.Publish(inst.ctx, name, value); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Failed to publish probe value", "probe_id", inst.ID.Canonical(), "err", err)
	}
}

func timeoutPerTarget(probe domain.Probe) bool {
	t, ok := probe.(domain.TargetTimeouter)
	return ok && t.TimeoutPerTarget()
}
