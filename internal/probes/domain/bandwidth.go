package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// netstat -inb column positions of the cumulative byte counters
const (
	netstatInBytesColumn  = 6
	netstatOutBytesColumn = 9
)

// Counters are cumulative received/sent bytes of one interface
type Counters struct {
	In  uint64
	Out uint64
}

// ParseInterfaceCounters reads `netstat -inb`. netstat prints one row per
// address family, only the first parsable row of each interface is kept.
// The loopback interface is skipped.
func ParseInterfaceCounters(output string) map[string]Counters {
	counters := make(map[string]Counters)

	lines := splitLines(output)
	if len(lines) < 2 {
		return counters
	}

	for _, line := range lines[1:] {
		if line == "" || unicode.IsSpace(rune(line[0])) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) <= netstatOutBytesColumn {
			continue
		}
		name := fields[0]
		if name == LoopbackInterface {
			continue
		}
		if _, seen := counters[name]; seen {
			continue
		}

		in, err := strconv.ParseUint(fields[netstatInBytesColumn], 10, 64)
		if err != nil {
			continue
		}
		out, err := strconv.ParseUint(fields[netstatOutBytesColumn], 10, 64)
		if err != nil {
			continue
		}
		counters[name] = Counters{In: in, Out: out}
	}

	return counters
}

// CounterSample is one timestamped set of interface counters
type CounterSample struct {
	Timestamp time.Time
	Counters  map[string]Counters
}

// BandwidthState keeps the previous counter sample of a bandwidth probe.
// It is owned by a single probe task and is not safe for concurrent use.
type BandwidthState struct {
	prev *CounterSample
}

// Observe stores the new sample and derives per-second rates against the
// previous one. It returns false when no rate could be computed: on the
// first sample, or when time did not move forward since the stored sample.
// Interfaces that vanished count as (0, 0). Only interfaces with traffic in
// either direction get a row.
func (s *BandwidthState) Observe(sample CounterSample) (Value, bool) {
	prev := s.prev
	s.prev = &sample

	if prev == nil || !sample.Timestamp.After(prev.Timestamp) {
		return Value{}, false
	}

	elapsedMillis := float64(sample.Timestamp.Sub(prev.Timestamp)) / float64(time.Millisecond)

	names := make([]string, 0, len(prev.Counters))
	for name := range prev.Counters {
		names = append(names, name)
	}
	sort.Strings(names)

	v := EmptyMapping()
	for _, name := range names {
		old := prev.Counters[name]
		cur := sample.Counters[name]

		in := rate(old.In, cur.In, elapsedMillis)
		out := rate(old.Out, cur.Out, elapsedMillis)
		if in > 0 || out > 0 {
			v.Set(name, FormatBandwidth(in, out))
		}
	}

	return v, true
}

// Previous returns the stored sample, if any
func (s *BandwidthState) Previous() (CounterSample, bool) {
	if s.prev == nil {
		return CounterSample{}, false
	}
	return *s.prev, true
}

// FormatBandwidth renders in/out rates in bytes per second
func FormatBandwidth(in, out float64) string {
	return "IN: " + Humanize(in) + "Bps / OUT: " + Humanize(out) + "Bps"
}

// rate is bytes per second. A counter that went backwards (interface reset,
// interface gone) yields zero instead of a negative rate.
func rate(old, cur uint64, elapsedMillis float64) float64 {
	if cur <= old {
		return 0
	}
	return float64(cur-old) * 1000 / elapsedMillis
}
