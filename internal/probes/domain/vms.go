package domain

import "regexp"

// VMSourceTag prefixes every VM name with the virtualization tool it came from
const VMSourceTag = "vbox - "

var (
	quotedNameRegex  = regexp.MustCompile(`"([^"]+)"`)
	vagrantNameRegex = regexp.MustCompile(`^(.+?)_([^_]+)_[0-9_]+$`)
)

// ParseRunningVMs extracts the quoted VM name of every line. Vagrant style
// names (dir_machine_1234_5678) are shown as "dir (machine)".
func ParseRunningVMs(output string) []string {
	vms := []string{}
	for _, line := range splitLines(output) {
		m := quotedNameRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		vms = append(vms, VMSourceTag+prettyVMName(m[1]))
	}
	return vms
}

func prettyVMName(name string) string {
	if m := vagrantNameRegex.FindStringSubmatch(name); m != nil {
		return m[1] + " (" + m[2] + ")"
	}
	return name
}
