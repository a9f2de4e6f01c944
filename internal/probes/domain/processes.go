package domain

import "strings"

// MaxTopProcesses is how many rows the process probe keeps
const MaxTopProcesses = 5

// Process is one row of the top processes listing
type Process struct {
	PID  string
	CPU  string
	Name string
}

// ParseTopProcesses drops the header and keeps at most the next five lines,
// in the order the command sorted them.
func ParseTopProcesses(output string) []Process {
	lines := splitLines(output)
	if len(lines) < 2 {
		return []Process{}
	}

	end := min(len(lines), MaxTopProcesses+1)
	procs := make([]Process, 0, MaxTopProcesses)
	for _, line := range lines[1:end] {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		procs = append(procs, Process{PID: fields[0], CPU: fields[1], Name: fields[2]})
	}
	return procs
}

// ProcessesValue renders processes as a pid/cpu/name table
func ProcessesValue(procs []Process) Value {
	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, []string{p.PID, p.CPU, p.Name})
	}
	return Table(rows)
}
