package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadAppliesDefaultsAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode, "unset fields come from the defaults")
	assert.Equal(t, 14, cfg.Timeline.PrepWindowDays)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWatchDeliversReloadedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, "timeline:\n  prep_window_days: 14\n")

	reloaded := make(chan *Config, 1)
	Watch(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	// Give the watcher a moment to arm before touching the file.
	time.Sleep(200 * time.Millisecond)
	writeConfigFile(t, path, "timeline:\n  prep_window_days: 30\n")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 30, cfg.Timeline.PrepWindowDays)
	case <-time.After(5 * time.Second):
		t.Fatal("no configuration reload observed")
	}
}

func TestWatchSkipsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, "timeline:\n  prep_window_days: 14\n")

	reloaded := make(chan *Config, 1)
	Watch(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	time.Sleep(200 * time.Millisecond)
	// A ratio below 1 fails policy validation; the broken file must not reach
	// the callback.
	writeConfigFile(t, path, "timeline:\n  business_to_calendar_ratio: 0.5\n")

	select {
	case cfg := <-reloaded:
		t.Fatalf("invalid configuration was delivered: %+v", cfg.Timeline)
	case <-time.After(1 * time.Second):
	}
}

//Personal.AI order the ending
