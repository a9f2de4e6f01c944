package domain

import "strings"

// splitLines splits command output on newlines and strips carriage returns.
// A trailing newline yields a final empty element, like the raw output does.
func splitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
