package domain

import (
	"regexp"
	"strconv"
)

var (
	pageSizeRegex   = regexp.MustCompile(`page size of (\d+) bytes`)
	vmStatLineRegex = regexp.MustCompile(`^(.*):\s+(\d+)\.$`)
	pageLabelRegex  = regexp.MustCompile(`[Pp]ages`)
)

// vm_stat labels for the counters the memory probe reports
const (
	LabelActive      = "Pages active"
	LabelWired       = "Pages wired down"
	LabelSpeculative = "Pages speculative"
	LabelCompressed  = "Pages occupied by compressor"
	LabelCached      = "File-backed pages"
	LabelFree        = "Pages free"
)

// VMStat holds vm_stat counters. Page counters are already converted to bytes.
type VMStat struct {
	PageSize uint64
	Counters map[string]uint64
}

// MemoryUsage is the byte breakdown shown by the memory probe
type MemoryUsage struct {
	Active      uint64
	Wired       uint64
	Speculative uint64
	Compressed  uint64
	Cached      uint64
	Free        uint64
}

// ParseVMStat parses vm_stat output. The page size line must come before the
// counters, which is how vm_stat prints it.
func ParseVMStat(output string) VMStat {
	stat := VMStat{Counters: make(map[string]uint64)}

	for _, line := range splitLines(output) {
		if m := pageSizeRegex.FindStringSubmatch(line); m != nil {
			size, err := strconv.ParseUint(m[1], 10, 64)
			if err == nil {
				stat.PageSize = size
			}
			continue
		}

		m := vmStatLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		count, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			continue
		}
		if pageLabelRegex.MatchString(m[1]) {
			count *= stat.PageSize
		}
		stat.Counters[m[1]] = count
	}

	return stat
}

// Memory picks the named counters out of the parsed stats
func (s VMStat) Memory() MemoryUsage {
	return MemoryUsage{
		Active:      s.Counters[LabelActive],
		Wired:       s.Counters[LabelWired],
		Speculative: s.Counters[LabelSpeculative],
		Compressed:  s.Counters[LabelCompressed],
		Cached:      s.Counters[LabelCached],
		Free:        s.Counters[LabelFree],
	}
}

// Total is the sum of the reported counters
func (m MemoryUsage) Total() uint64 {
	return m.Active + m.Wired + m.Speculative + m.Compressed + m.Cached + m.Free
}

// Value renders the breakdown as a mapping of humanized byte counts
func (m MemoryUsage) Value() Value {
	v := EmptyMapping()
	v.Set("active", Humanize(float64(m.Active))+"B")
	v.Set("wired", Humanize(float64(m.Wired))+"B")
	v.Set("speculative", Humanize(float64(m.Speculative))+"B")
	v.Set("compressed", Humanize(float64(m.Compressed))+"B")
	v.Set("cached", Humanize(float64(m.Cached))+"B")
	v.Set("free", Humanize(float64(m.Free))+"B")
	v.Set("total", Humanize(float64(m.Total()))+"B")
	return v
}
