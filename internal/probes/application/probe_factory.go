package application

import (
	"context"
	"encoding/json"

	"sysprobe/internal/probes/domain"
	"sysprobe/internal/shared/validation"
	"sysprobe/pkg/utils"
)

// BuildProbe creates a probe from raw configuration.
// runner is injected into every probe, reader only into probes that consult
// other probes' published values.
func BuildProbe(instance string, rawCfg []byte, runner domain.CommandRunner, reader domain.SnapshotReader) (utils.EntityID, domain.ProbeConfig, domain.Probe, error) {
	var id utils.EntityID
	var cfg domain.ProbeConfig
	err := json.Unmarshal(rawCfg, &cfg)
	if err != nil {
		return id, cfg, nil, err
	}

	if cfg.Name == "" {
		return id, cfg, nil, validation.NewNoNameError(instance, "probes")
	}

	problems := cfg.Valid(context.TODO())
	if len(problems) > 0 {
		return id, cfg, nil, validation.NewValidationError(problems, instance, cfg.Name)
	}

	id = domain.NewProbeID(instance, cfg.Type, cfg.Name)

	var probe domain.Probe
	switch cfg.Type {
	case domain.TypeHostname:
		probe = newCommandProbe(runner, parseHostname, domain.Scalar(domain.NoData))
	case domain.TypeCPU:
		probe = newCommandProbe(runner, parseCPU, domain.Scalar(domain.NoData))
	case domain.TypeMemory:
		probe = newCommandProbe(runner, parseMemory, domain.EmptyMapping())
	case domain.TypeProcesses:
		probe = newCommandProbe(runner, parseProcesses, domain.Table(nil))
	case domain.TypeDisk:
		probe = newCommandProbe(runner, parseDisk, domain.EmptyMapping())
	case domain.TypeInterfaces:
		probe = newCommandProbe(runner, parseInterfaces, domain.EmptyMapping())
	case domain.TypeDNS:
		probe = newCommandProbe(runner, parseDNS, domain.List(nil))
	case domain.TypeWifi:
		probe = newCommandProbe(runner, parseWifi, domain.EmptyMapping())
	case domain.TypeRoute:
		probe = newCommandProbe(runner, parseRoute, domain.Scalar(domain.NoData))
	case domain.TypeVMs:
		probe = newCommandProbe(runner, parseVMs, domain.List(nil))
	case domain.TypeBandwidth:
		probe = newBandwidthProbe(runner)
	case domain.TypePing:
		probe = newPingProbe(runner, reader)
	default:
		return id, cfg, nil, validation.NewValidationError(map[string]string{
			"type": "unknown probe type: " + cfg.Type,
		}, instance, cfg.Name)
	}

	err = probe.Configure(id, rawCfg)
	if err != nil {
		return id, cfg, nil, err
	}

	return id, cfg, probe, nil
}
