package domain

import (
	"context"
	"slices"
	"strings"
)

// DefaultRouteTarget is replaced by the observed default gateway
const DefaultRouteTarget = "default_route"

// PingTargets is the ping probe's target configuration
type PingTargets struct {
	Hosts               []string `json:"hosts"`
	HomeRouter          string   `json:"home_router,omitempty"`
	AdditionalHomeHosts []string `json:"additional_home_hosts,omitempty"`
}

func (c *PingTargets) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string, 2)

	if len(c.Hosts) == 0 {
		problems["hosts"] = "hosts cannot be empty"
	}

	for _, h := range slices.Concat(c.Hosts, c.AdditionalHomeHosts) {
		if strings.TrimSpace(h) == "" || strings.ContainsAny(h, " \t;|&$`'\"") {
			problems["hosts"] = "invalid host: " + h
			break
		}
	}

	if len(c.AdditionalHomeHosts) > 0 && c.HomeRouter == "" {
		problems["home_router"] = "required when additional_home_hosts is set"
	}

	return problems
}

// Targets returns the hosts to ping this cycle. The home hosts are added
// only while the observed gateway is the configured home router.
func (c PingTargets) Targets(gateway string, known bool) []string {
	targets := slices.Clone(c.Hosts)
	if known && c.HomeRouter != "" && gateway == c.HomeRouter {
		targets = append(targets, c.AdditionalHomeHosts...)
	}
	return targets
}

// ResolveTarget maps a configured target to the host to ping. The symbolic
// default route resolves to the gateway, or to nothing while it is unknown.
func ResolveTarget(target, gateway string, known bool) (string, bool) {
	if target != DefaultRouteTarget {
		return target, true
	}
	if !known || gateway == "" {
		return "", false
	}
	return gateway, true
}
