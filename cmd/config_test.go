package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "latte", configBaseName)
	assert.Equal(t, "latte.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", parallelFlagName)
	assert.Equal(t, "timeout", timeoutFlagName)
	assert.Equal(t, "hook-failures", hookFailuresFlagName)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "run.timeout", timeoutKey)
	assert.Equal(t, "run.hook_failures", hookFailuresKey)
	assert.Equal(t, "report.color", colorKey)
	assert.Equal(t, "per-case", defaultHookFailures)
	assert.Equal(t, "auto", defaultColor)
	assert.Equal(t, "LATTE", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigureLogger_Verbose(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")

	configureLogger(logPath, true)
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	slog.Debug("details", "run_id", "abc")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "level=DEBUG")
	assert.Contains(t, string(contents), "run_id=abc")
}

func TestConfigureLogger_DefaultLevelDropsDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "info.log")

	configureLogger(logPath, false)
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	slog.Debug("hidden")
	slog.Info("shown")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(contents), "hidden")
	assert.Contains(t, string(contents), "shown")
}

func TestReadConfig(t *testing.T) {
	original := viper.ConfigFileUsed()
	t.Cleanup(func() { viper.SetConfigFile(original) })

	var logs bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	dir := t.TempDir()

	viper.SetConfigFile(filepath.Join(dir, "missing.yaml"))
	readConfig()
	assert.Empty(t, logs.String())

	broken := filepath.Join(dir, "latte.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("run: [\n"), 0o644))

	viper.SetConfigFile(broken)
	readConfig()
	assert.Contains(t, logs.String(), "Failed to read config file")
	assert.Contains(t, logs.String(), broken)
	assert.Equal(t, defaultHookFailures, viper.GetString(hookFailuresKey))
}
