package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileLogger(t *testing.T, level string) (Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(LogConfig{
		Level:       level,
		Format:      "json",
		OutputPaths: []string{path},
	})
	require.NoError(t, err)
	return logger, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

func TestSetLevelTakesEffectAtRuntime(t *testing.T) {
	logger, path := fileLogger(t, "info")

	logger.Debug("suppressed entry")

	setter, ok := logger.(LevelSetter)
	require.True(t, ok, "the zap-backed logger supports runtime level changes")
	setter.SetLevel("debug")

	logger.Debug("emitted entry")

	out := readLog(t, path)
	assert.NotContains(t, out, "suppressed entry")
	assert.Contains(t, out, "emitted entry")
}

func TestSetLevelReachesNamedChildren(t *testing.T) {
	logger, path := fileLogger(t, "info")
	child := logger.Named("worker").With(String("component", "reload"))

	child.Debug("child before")
	logger.(LevelSetter).SetLevel("debug")
	child.Debug("child after")

	out := readLog(t, path)
	assert.NotContains(t, out, "child before")
	assert.Contains(t, out, "child after")
}

func TestNopLoggerHasNoRuntimeLevel(t *testing.T) {
	_, ok := NewNopLogger().(LevelSetter)
	assert.False(t, ok)
}

//Personal.AI order the ending
