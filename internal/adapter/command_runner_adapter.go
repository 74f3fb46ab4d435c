package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// commandWaitDelay bounds how long a cancelled command may keep its output
// pipes open through orphaned children.
const commandWaitDelay = time.Second

// CommandRunnerAdapter runs the shell commands that make up suite file bodies.
type CommandRunnerAdapter interface {
	// RunCommand runs command with `sh -c` in workDir. It returns the combined
	// stdout/stderr output, and a *CommandError if the command did not succeed.
	RunCommand(ctx context.Context, workDir, command string) (output string, err error)
}

// CommandError is raised by a suite command that failed.
type CommandError struct {
	Command  string
	ExitCode int // -1 when the command did not exit normally
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
	}

	if e.Output == "" {
		return msg
	}

	return msg + "\n" + e.Output
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// LocalCommandRunnerAdapter runs commands with os/exec.
type LocalCommandRunnerAdapter struct {
	shell string
}

// NewLocalCommandRunnerAdapter constructs a LocalCommandRunnerAdapter using sh.
func NewLocalCommandRunnerAdapter() *LocalCommandRunnerAdapter {
	return &LocalCommandRunnerAdapter{shell: "sh"}
}

// RunCommand implements CommandRunnerAdapter.
func (a *LocalCommandRunnerAdapter) RunCommand(ctx context.Context, workDir, command string) (string, error) {
	cmd := exec.CommandContext(ctx, a.shell, "-c", command)
	cmd.Dir = workDir
	cmd.WaitDelay = commandWaitDelay

	var out bytes.Buffer

	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := strings.TrimSpace(out.String())

	if err == nil {
		return output, nil
	}

	cmdErr := &CommandError{Command: command, ExitCode: -1, Output: output, Err: err}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		cmdErr.ExitCode = exitErr.ExitCode()
	}

	return output, cmdErr
}
