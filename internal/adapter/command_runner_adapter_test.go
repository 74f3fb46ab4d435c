package adapter

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestLocalCommandRunnerAdapter_RunCommand(t *testing.T) {
	requireShell(t)

	runner := NewLocalCommandRunnerAdapter()
	ctx := context.Background()

	out, err := runner.RunCommand(ctx, "", "echo hello; echo oops >&2")
	require.NoError(t, err)
	assert.Equal(t, "hello\noops", out)
}

func TestLocalCommandRunnerAdapter_WorkDir(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	out, err := NewLocalCommandRunnerAdapter().RunCommand(context.Background(), dir, "pwd -P")
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestLocalCommandRunnerAdapter_ExitStatus(t *testing.T) {
	requireShell(t)

	out, err := NewLocalCommandRunnerAdapter().RunCommand(context.Background(), "", "echo broken; exit 3")
	require.Error(t, err)
	assert.Equal(t, "broken", out)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "command \"echo broken; exit 3\" exited with status 3\nbroken", cmdErr.Error())

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

func TestLocalCommandRunnerAdapter_Cancelled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewLocalCommandRunnerAdapter().RunCommand(ctx, "", "sleep 5")
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Error(), `command "sleep 5" failed`)
}

func TestCommandError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *CommandError
		want string
	}{
		{"exit status", &CommandError{Command: "false", ExitCode: 1}, `command "false" exited with status 1`},
		{"with output", &CommandError{Command: "false", ExitCode: 2, Output: "nope"}, "command \"false\" exited with status 2\nnope"},
		{"abnormal", &CommandError{Command: "x", ExitCode: -1, Err: errors.New("signal: killed")}, `command "x" failed: signal: killed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
