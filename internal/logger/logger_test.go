package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLogFilePath_UsesStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	path, err := getLogFilePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/tmp/state", "devtool", "dev.log"), path)
}

func TestInitLogger_WritesToStateFile(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	t.Cleanup(func() { defaultLogger = nil })

	InitLogger(false)
	Info("step finished", "step", "black")
	Debug("hidden at info level")

	data, err := os.ReadFile(filepath.Join(state, "devtool", "dev.log"))
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &record))
	require.Equal(t, "step finished", record["msg"])
	require.Equal(t, "black", record["step"])
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { defaultLogger = nil })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	Warnf("tool %s exited with status %d", "flake8", 1)
	Debugf("resolved %d paths", 2)

	require.Contains(t, buf.String(), "tool flake8 exited with status 1")
	require.Contains(t, buf.String(), "resolved 2 paths")
}

func TestUninitializedLoggerDoesNotPanic(t *testing.T) {
	defaultLogger = nil
	t.Cleanup(func() { defaultLogger = nil })

	require.NotPanics(t, func() {
		Error("nothing configured")
		Errorf("still %s", "nothing")
		Infof("quiet")
	})
}
