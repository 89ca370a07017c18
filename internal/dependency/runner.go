package dependency

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"
)

// ErrCommandNotFound is returned by a CommandRunner when the program
// cannot be started because it does not exist.
var ErrCommandNotFound = errors.New("command not found")

// CommandResult is the captured outcome of a finished subprocess.
type CommandResult struct {
	Stdout   []byte
	ExitCode int
}

// CommandRunner runs a program to completion. A nonzero exit is reported
// through CommandResult.ExitCode, not as an error; errors are reserved for
// programs that could not run at all or were stopped by ctx.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (*CommandResult, error)
}

// ExecRunner runs real processes. Stderr is discarded.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// Bound how long we wait on pipes held open by grandchildren after a kill.
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandResult{Stdout: stdout.Bytes(), ExitCode: exitErr.ExitCode()}, nil
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
		}
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}
	return &CommandResult{Stdout: stdout.Bytes()}, nil
}
