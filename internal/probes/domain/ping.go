package domain

import (
	"regexp"
	"strings"
)

// PingOutcome classifies one ping invocation
type PingOutcome int

const (
	PingUnknown PingOutcome = iota
	PingReply
	PingNoReply
)

var (
	roundTripRegex = regexp.MustCompile(`(?m)^(?:round-trip|rtt) \S+ = ([^/]+)`)
	noReplyRegex   = regexp.MustCompile(`\b0 (?:packets )?received`)
)

// PingResult is a parsed ping output
type PingResult struct {
	Outcome PingOutcome
	Latency string
}

// ParsePing looks for the round-trip summary, then for a zero received count.
// Output matching neither is unknown.
func ParsePing(output string) PingResult {
	if m := roundTripRegex.FindStringSubmatch(output); m != nil {
		return PingResult{Outcome: PingReply, Latency: strings.TrimSpace(m[1])}
	}
	if noReplyRegex.MatchString(output) {
		return PingResult{Outcome: PingNoReply}
	}
	return PingResult{Outcome: PingUnknown}
}
