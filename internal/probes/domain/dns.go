package domain

import "regexp"

var nameserverRegex = regexp.MustCompile(`^nameserver (\S+)`)

// ParseNameservers returns resolver addresses in file order
func ParseNameservers(output string) []string {
	servers := []string{}
	for _, line := range splitLines(output) {
		if m := nameserverRegex.FindStringSubmatch(line); m != nil {
			servers = append(servers, m[1])
		}
	}
	return servers
}
