package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sysprobe/internal/probes/domain"
	"sysprobe/pkg/utils"
)

// parseFunc turns a command output into the value to publish
type parseFunc func(output string) (domain.Value, error)

// CommandProbe runs one command per cycle and publishes the parsed output.
// It keeps no state between cycles.
type CommandProbe struct {
	ID     utils.EntityID
	cfg    domain.ProbeConfig
	runner domain.CommandRunner
	parse  parseFunc
	def    domain.Value
}

func newCommandProbe(runner domain.CommandRunner, parse parseFunc, def domain.Value) *CommandProbe {
	return &CommandProbe{
		runner: runner,
		parse:  parse,
		def:    def,
	}
}

// Run executes the command and parses its output
func (p *CommandProbe) Run(ctx context.Context) (domain.Value, error) {
	output, err := p.runner.Run(ctx, p.cfg.CommandOrDefault())
	if err != nil {
		return domain.Value{}, fmt.Errorf("probe %s: %w", p.cfg.Name, err)
	}
	return p.parse(output)
}

// Configure configures the probe with the given ID and raw config
func (p *CommandProbe) Configure(id utils.EntityID, rawCfg []byte) error {
	var cfg domain.ProbeConfig
	if err := json.Unmarshal(rawCfg, &cfg); err != nil {
		return err
	}

	p.ID = id
	p.cfg = cfg
	return nil
}

// Default returns the value published before the first run
func (p *CommandProbe) Default() domain.Value {
	return p.def
}

func parseHostname(output string) (domain.Value, error) {
	return domain.Scalar(strings.TrimSpace(output)), nil
}

func parseCPU(output string) (domain.Value, error) {
	return domain.Scalar(domain.FormatPercent(domain.ParseCPUUsage(output))), nil
}

func parseMemory(output string) (domain.Value, error) {
	return domain.ParseVMStat(output).Memory().Value(), nil
}

func parseProcesses(output string) (domain.Value, error) {
	return domain.ProcessesValue(domain.ParseTopProcesses(output)), nil
}

func parseDisk(output string) (domain.Value, error) {
	usage, ok := domain.ParseDiskUsage(output)
	if !ok {
		return domain.Value{}, domain.ErrSkip
	}
	return usage.Value(), nil
}

func parseInterfaces(output string) (domain.Value, error) {
	return domain.InterfacesValue(domain.ParseInterfaces(output)), nil
}

func parseDNS(output string) (domain.Value, error) {
	return domain.List(domain.ParseNameservers(output)), nil
}

func parseWifi(output string) (domain.Value, error) {
	return domain.ParseWifi(output).Value(), nil
}

// parseRoute keeps the last known gateway published while the routing
// table has no default entry.
func parseRoute(output string) (domain.Value, error) {
	gateway, ok := domain.ParseDefaultRoute(output)
	if !ok {
		return domain.Value{}, domain.ErrSkip
	}
	return domain.Scalar(gateway), nil
}

func parseVMs(output string) (domain.Value, error) {
	return domain.List(domain.ParseRunningVMs(output)), nil
}
