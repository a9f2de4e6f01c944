package domain

import (
	"strconv"
	"strings"
)

const humanSuffixes = "kMGT"

// Humanize scales a non-negative magnitude by powers of 1024 and renders it
// with a k/M/G/T suffix: 1024 -> "1.00k", 512 -> "512", 0 -> "0.00".
// Scaled values of 1000 or more are printed without decimals.
func Humanize(value float64) string {
	idx := -1
	for value >= 1024 && idx < len(humanSuffixes)-1 {
		value /= 1024
		idx++
	}

	suffix := ""
	if idx >= 0 {
		suffix = humanSuffixes[idx : idx+1]
	}

	if value >= 1000 {
		return strconv.FormatFloat(value, 'f', 0, 64) + suffix
	}
	return toPrecision3(value) + suffix
}

// toPrecision3 renders v with three significant digits in plain notation.
func toPrecision3(v float64) string {
	sci := strconv.FormatFloat(v, 'e', 2, 64)
	_, expStr, _ := strings.Cut(sci, "e")
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	if exp >= 3 {
		// 999.5 and friends round up to four integer digits
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	decimals := 2 - exp
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
