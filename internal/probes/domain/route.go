package domain

import "regexp"

var defaultRouteRegex = regexp.MustCompile(`^default\s+([0-9.]+)`)

// ParseDefaultRoute returns the IPv4 gateway of the last `default` row of
// `netstat -nr`. IPv6 default rows do not match the pattern.
func ParseDefaultRoute(output string) (string, bool) {
	gateway := ""
	found := false
	for _, line := range splitLines(output) {
		if m := defaultRouteRegex.FindStringSubmatch(line); m != nil {
			gateway = m[1]
			found = true
		}
	}
	return gateway, found
}
