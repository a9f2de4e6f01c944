package domain

import (
	"context"
	_ "embed"
	"encoding/json"

	"sysprobe/pkg/utils"
)

// DefaultConfig is used when no configuration file is given. It runs every
// probe type with the refresh intervals of a desktop status widget.
//
//go:embed default.yaml
var DefaultConfig []byte

// InstanceConfig represents the top-level instance configuration
type InstanceConfig struct {
	Name   string            `json:"name"`
	Probes []json.RawMessage `json:"probes"`
}

func (c *InstanceConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string, 2)

	err := utils.CheckName(c.Name)
	if err != nil {
		problems["name"] = err.Error()
	}

	if len(c.Probes) == 0 {
		problems["probes"] = "probes cannot be empty"
	}

	return problems
}
