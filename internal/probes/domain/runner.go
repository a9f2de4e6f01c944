package domain

import (
	"context"
	"fmt"
)

// CommandRunner executes a command line and returns its standard output.
// It blocks until the command exits or ctx is cancelled.
type CommandRunner interface {
	Run(ctx context.Context, command string) (string, error)
}

// CommandError describes a command that could not be run or exited non-zero.
// Output holds whatever the command printed before failing.
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("command %q exited with status %d: %v", e.Command, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Exited reports whether the command ran to completion with a non-zero status,
// as opposed to failing to start or being killed.
func (e *CommandError) Exited() bool {
	return e.ExitCode > 0
}
