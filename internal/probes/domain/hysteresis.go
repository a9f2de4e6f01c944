package domain

// Ping display values
const (
	PingNoData         = NoData
	PingTimeoutHigh    = "TIMEOUT"
	PingTimeoutLow     = "timeout"
	PingUnknownDisplay = "UNKNOWN"
	PingErrorDisplay   = "ERROR"
)

// TimeoutEscalationLimit is the number of consecutive timeouts shown as
// TIMEOUT. Hosts that never answer (a gateway dropping ICMP) settle into the
// lowercase display afterwards.
const TimeoutEscalationLimit = 5

// HostState is the per-host ping record: what is displayed and how many
// consecutive timeouts led there.
type HostState struct {
	Display string
	Streak  int
}

// NewHostState returns the state of a host that has not been pinged yet
func NewHostState() *HostState {
	return &HostState{Display: PingNoData}
}

// Apply moves the state machine with a parsed ping output
func (h *HostState) Apply(result PingResult) {
	switch result.Outcome {
	case PingReply:
		h.Display = result.Latency + "ms"
		h.Streak = 0
	case PingNoReply:
		h.Streak++
		if h.Streak <= TimeoutEscalationLimit {
			h.Display = PingTimeoutHigh
		} else {
			h.Display = PingTimeoutLow
		}
	default:
		h.Display = PingUnknownDisplay
	}
}

// Fail records a ping command that could not be run
func (h *HostState) Fail() {
	h.Display = PingErrorDisplay
}
