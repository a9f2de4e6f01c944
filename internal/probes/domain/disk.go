package domain

import (
	"strconv"
	"strings"
)

// DiskUsage holds root filesystem sizes in KiB
type DiskUsage struct {
	TotalKB uint64
	FreeKB  uint64
	UsedKB  uint64
}

// ParseDiskUsage reads the root filesystem row of `df -k /`, which is the
// second-to-last line of the newline-terminated output. Used space is
// total minus free: df's own used column only covers the mounted volume,
// not the whole disk.
func ParseDiskUsage(output string) (DiskUsage, bool) {
	lines := splitLines(output)
	if len(lines) < 2 {
		return DiskUsage{}, false
	}

	fields := strings.Fields(lines[len(lines)-2])
	if len(fields) < 4 {
		return DiskUsage{}, false
	}

	total, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return DiskUsage{}, false
	}
	free, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return DiskUsage{}, false
	}

	usage := DiskUsage{TotalKB: total, FreeKB: free}
	if free < total {
		usage.UsedKB = total - free
	}
	return usage, true
}

// Percent returns the used percentage, or false when total is zero
func (d DiskUsage) Percent() (int, bool) {
	if d.TotalKB == 0 {
		return 0, false
	}
	return int(100 * d.UsedKB / d.TotalKB), true
}

// Value renders humanized used/free/total bytes and the used percentage
func (d DiskUsage) Value() Value {
	v := EmptyMapping()
	v.Set("used", Humanize(float64(d.UsedKB)*1024)+"B")
	v.Set("free", Humanize(float64(d.FreeKB)*1024)+"B")
	v.Set("total", Humanize(float64(d.TotalKB)*1024)+"B")
	if pct, ok := d.Percent(); ok {
		v.Set("percent", strconv.Itoa(pct)+"%")
	}
	return v
}
