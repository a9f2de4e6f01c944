package domain

import (
	"context"
	"errors"
	"time"

	"sysprobe/pkg/utils"
)

// ErrSkip is returned by a probe that ran fine but has nothing to publish
// this cycle (first bandwidth sample, no default route in the table yet).
var ErrSkip = errors.New("nothing to publish this cycle")

// MinInterval keeps misconfigured probes from spinning
const MinInterval = 100 * time.Millisecond

// Probe types
const (
	TypeHostname   = "hostname"
	TypeCPU        = "cpu"
	TypeMemory     = "memory"
	TypeProcesses  = "processes"
	TypeDisk       = "disk"
	TypeInterfaces = "interfaces"
	TypeDNS        = "dns"
	TypeWifi       = "wifi"
	TypeBandwidth  = "bandwidth"
	TypeRoute      = "route"
	TypePing       = "ping"
	TypeVMs        = "vms"
)

// DefaultCommands are the macOS utilities each probe type shells out to.
// {host} is substituted by the ping probe.
var DefaultCommands = map[string]string{
	TypeHostname:   "hostname",
	TypeCPU:        "ps -A -o %cpu",
	TypeMemory:     "vm_stat",
	TypeProcesses:  "ps axro 'pid, %cpu, ucomm'",
	TypeDisk:       "df -k /",
	TypeInterfaces: "ifconfig -a",
	TypeDNS:        "cat /etc/resolv.conf",
	TypeWifi:       "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport -I",
	TypeBandwidth:  "netstat -inb",
	TypeRoute:      "netstat -nr",
	TypePing:       "ping -n -c 1 -W 1 {host}",
	TypeVMs:        "/usr/local/bin/VBoxManage list runningvms",
}

// Probe is one independently scheduled unit of work
type Probe interface {
	// Run executes one cycle and returns the value to publish.
	// A non-nil error leaves the previously published value in place.
	Run(ctx context.Context) (Value, error)
	// Configure applies the probe's raw configuration
	Configure(id utils.EntityID, rawCfg []byte) error
	// Default is published when the probe is registered
	Default() Value
}

// TargetTimeouter is implemented by probes that apply the configured timeout
// to each of their targets. The scheduler then gives the cycle no deadline.
type TargetTimeouter interface {
	TimeoutPerTarget() bool
}

// ProbeConfig holds the fields shared by every probe type
type ProbeConfig struct {
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Interval Duration `json:"interval"`
	Command  string   `json:"command,omitempty"`
	Timeout  Duration `json:"timeout,omitempty"`
}

func (c *ProbeConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string, 3)

	err := utils.CheckName(c.Name)
	if err != nil {
		problems["name"] = err.Error()
	}

	if len(c.Type) == 0 {
		problems["type"] = "'type' is required"
	} else if _, ok := DefaultCommands[c.Type]; !ok {
		problems["type"] = "unknown probe type: " + c.Type
	}

	if c.Interval.Std() < MinInterval {
		problems["interval"] = "interval should be at least " + MinInterval.String()
	}

	if c.Timeout < 0 {
		problems["timeout"] = "cannot be less than zero"
	}

	return problems
}

// CommandOrDefault returns the configured command or the type's default
func (c *ProbeConfig) CommandOrDefault() string {
	if c.Command != "" {
		return c.Command
	}
	return DefaultCommands[c.Type]
}

// NewProbeID creates a probe entity ID
func NewProbeID(instance, probeType, name string) utils.EntityID {
	return utils.EntityID{
		Kind: "probe",
		Labels: map[string]string{
			"instance": instance,
			"type":     probeType,
			"name":     name,
		},
	}
}
