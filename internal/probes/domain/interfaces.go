package domain

import (
	"regexp"
	"strings"
)

// LoopbackInterface is excluded from interface and bandwidth listings
const LoopbackInterface = "lo0"

var (
	interfaceHeaderRegex  = regexp.MustCompile(`^([a-z0-9]+):`)
	interfaceAddressRegex = regexp.MustCompile(`^\s+inet6? ([0-9a-f.:]+)`)
	excludedAddressRegex  = regexp.MustCompile(`^(fe80|fd00)`)
)

// Interface is a network interface and its routable addresses
type Interface struct {
	Name      string
	Addresses []string
}

// ParseInterfaces reads `ifconfig -a` output. Link-local (fe80) and locally
// assigned (fd00) addresses are dropped, as are the loopback interface and
// interfaces left without any address.
func ParseInterfaces(output string) []Interface {
	var all []Interface
	current := -1

	for _, line := range splitLines(output) {
		if m := interfaceHeaderRegex.FindStringSubmatch(line); m != nil {
			all = append(all, Interface{Name: m[1]})
			current = len(all) - 1
			continue
		}
		if current < 0 {
			continue
		}
		m := interfaceAddressRegex.FindStringSubmatch(line)
		if m == nil || excludedAddressRegex.MatchString(m[1]) {
			continue
		}
		all[current].Addresses = append(all[current].Addresses, m[1])
	}

	result := make([]Interface, 0, len(all))
	for _, iface := range all {
		if iface.Name == LoopbackInterface || len(iface.Addresses) == 0 {
			continue
		}
		result = append(result, iface)
	}
	return result
}

// InterfacesValue maps interface names to comma separated addresses
func InterfacesValue(ifaces []Interface) Value {
	v := EmptyMapping()
	for _, iface := range ifaces {
		v.Set(iface.Name, strings.Join(iface.Addresses, ", "))
	}
	return v
}
