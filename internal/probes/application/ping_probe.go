package application

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"sysprobe/internal/probes/domain"
	"sysprobe/internal/shared/validation"
	"sysprobe/pkg/utils"
)

// maxConcurrentPings bounds the number of ping processes of one cycle
const maxConcurrentPings = 8

// PingConfig is the configuration of a ping probe
type PingConfig struct {
	domain.ProbeConfig
	domain.PingTargets
	// GatewayProbe names the probe whose published value is the default gateway
	GatewayProbe string `json:"gateway_probe,omitempty"`
}

func (c *PingConfig) Valid(ctx context.Context) map[string]string {
	problems := c.ProbeConfig.Valid(ctx)
	for field, problem := range c.PingTargets.Valid(ctx) {
		problems[field] = problem
	}
	if c.GatewayProbe != "" {
		if err := utils.CheckName(c.GatewayProbe); err != nil {
			problems["gateway_probe"] = err.Error()
		}
	}
	return problems
}

func (c *PingConfig) gatewayProbe() string {
	if c.GatewayProbe == "" {
		return domain.TypeRoute
	}
	return c.GatewayProbe
}

// PingProbe pings every target once per cycle and keeps a hysteresis record
// per host. The record map is owned by the probe's task.
type PingProbe struct {
	ID     utils.EntityID
	cfg    PingConfig
	runner domain.CommandRunner
	reader domain.SnapshotReader

	hosts map[string]*domain.HostState
}

func newPingProbe(runner domain.CommandRunner, reader domain.SnapshotReader) *PingProbe {
	return &PingProbe{
		runner: runner,
		reader: reader,
		hosts:  make(map[string]*domain.HostState),
	}
}

type pingAttempt struct {
	result domain.PingResult
	failed bool
}

// Run pings the targets of this cycle concurrently and applies the results
// in target order. A target that cannot be resolved yet is skipped without
// touching its record.
func (p *PingProbe) Run(ctx context.Context) (domain.Value, error) {
	gateway, known := p.gateway()

	var hosts []string
	for _, target := range p.cfg.Targets(gateway, known) {
		host, ok := domain.ResolveTarget(target, gateway, known)
		if !ok || slices.Contains(hosts, host) {
			continue
		}
		hosts = append(hosts, host)
	}

	attempts := make([]pingAttempt, len(hosts))
	var g errgroup.Group
	g.SetLimit(maxConcurrentPings)
	for i, host := range hosts {
		g.Go(func() error {
			attempts[i] = p.ping(ctx, host)
			return nil
		})
	}
	_ = g.Wait()

	// torn down, the records must not move
	if err := ctx.Err(); err != nil {
		return domain.Value{}, err
	}

	value := domain.EmptyMapping()
	for i, host := range hosts {
		state, ok := p.hosts[host]
		if !ok {
			state = domain.NewHostState()
			p.hosts[host] = state
		}

		if attempts[i].failed {
			state.Fail()
		} else {
			state.Apply(attempts[i].result)
		}
		value.Set(host, state.Display)
	}

	return value, nil
}

// ping runs one ping command under the configured timeout. A host that
// does not answer in time fails alone, the other hosts keep their results.
func (p *PingProbe) ping(ctx context.Context, host string) pingAttempt {
	if timeout := p.cfg.Timeout.Std(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	output, err := p.runner.Run(ctx, p.command(host))
	if ctx.Err() != nil {
		return pingAttempt{failed: true}
	}
	return classifyPing(output, err)
}

// TimeoutPerTarget tells the scheduler the timeout applies to each host
func (p *PingProbe) TimeoutPerTarget() bool {
	return true
}

func (p *PingProbe) gateway() (string, bool) {
	v, ok := p.reader.Lookup(p.cfg.gatewayProbe())
	if !ok || v.Kind != domain.KindScalar || v.Scalar == "" || v.Scalar == domain.NoData {
		return "", false
	}
	return v.Scalar, true
}

func (p *PingProbe) command(host string) string {
	return strings.ReplaceAll(p.cfg.CommandOrDefault(), "{host}", host)
}

// classifyPing parses the ping output. ping exits non-zero when no reply
// came back, so the output of an exited command is still classified.
func classifyPing(output string, err error) pingAttempt {
	if err == nil {
		return pingAttempt{result: domain.ParsePing(output)}
	}

	var cmdErr *domain.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Exited() && strings.TrimSpace(cmdErr.Output) != "" {
		return pingAttempt{result: domain.ParsePing(cmdErr.Output)}
	}
	return pingAttempt{failed: true}
}

// Configure configures the ping probe with the given ID and raw config
func (p *PingProbe) Configure(id utils.EntityID, rawCfg []byte) error {
	var cfg PingConfig
	if err := json.Unmarshal(rawCfg, &cfg); err != nil {
		return err
	}

	problems := cfg.Valid(context.TODO())
	if len(problems) > 0 {
		return validation.NewValidationError(problems, id.Label("instance"), cfg.Name)
	}

	p.ID = id
	p.cfg = cfg
	return nil
}

func (p *PingProbe) Default() domain.Value {
	return domain.EmptyMapping()
}
