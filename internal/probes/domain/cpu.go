package domain

import (
	"strconv"
	"strings"
)

// ParseCPUUsage sums the %cpu column of a process listing.
// The header and any unparsable line count as zero.
func ParseCPUUsage(output string) float64 {
	total := 0.0
	for _, line := range splitLines(output) {
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total
}

// FormatPercent renders a percentage with three significant digits
func FormatPercent(v float64) string {
	return toPrecision3(v) + "%"
}
