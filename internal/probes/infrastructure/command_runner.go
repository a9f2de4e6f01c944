package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"sysprobe/internal/probes/domain"
)

// waitDelay bounds how long Run waits for the pipes of a killed command.
// Children of the shell can keep stdout open after the shell itself is gone.
const waitDelay = time.Second

// ShellRunner implements domain.CommandRunner by running command lines
// through /bin/sh
type ShellRunner struct {
	shell string
}

// NewShellRunner creates a new shell runner
func NewShellRunner() *ShellRunner {
	return &ShellRunner{shell: "/bin/sh"}
}

// Run executes command and returns its standard output. Cancelling ctx kills
// the command. A non-zero exit yields a *domain.CommandError carrying the
// exit code and whatever was printed.
func (r *ShellRunner) Run(ctx context.Context, command string) (string, error) {
	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	output := stdout.String()
	if err == nil {
		return output, nil
	}

	cmdErr := &domain.CommandError{
		Command:  command,
		ExitCode: -1,
		Output:   output,
		Err:      err,
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		cmdErr.Err = ctxErr
		return output, cmdErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return output, cmdErr
}
