package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaultsFillsEverySection(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "visapath", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, "migrations", cfg.Database.MigrationPath)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "visapath:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 12*time.Hour, cfg.Redis.RequirementTTL)
	assert.Equal(t, 15*time.Minute, cfg.Redis.NegativeTTL)

	assert.Equal(t, "all", cfg.Kafka.Acks)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	require.NoError(t, cfg.Validate())
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9090
	cfg.Database.DBName = "visapath_test"
	cfg.Log.Level = "debug"
	ApplyDefaults(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "visapath_test", cfg.Database.DBName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "release", cfg.Server.Mode, "untouched fields still get defaults")
}

func TestApplyDefaultsFillsPartialTimelinePolicy(t *testing.T) {
	cfg := &Config{}
	cfg.Timeline.PrepWindowDays = 21
	ApplyDefaults(cfg)

	def := timeline.DefaultPolicy()
	assert.Equal(t, 21, cfg.Timeline.PrepWindowDays)
	assert.Equal(t, def.BusinessToCalendarRatio, cfg.Timeline.BusinessToCalendarRatio)
	assert.Equal(t, def.BufferDaysByVisaType, cfg.Timeline.BufferDaysByVisaType)
	assert.NotEmpty(t, cfg.Timeline.Seasons.Global)
	require.NoError(t, cfg.Timeline.Validate())
}

func TestValidateServerSection(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.Mode = "production"
	assert.Error(t, cfg.Validate())
}

func TestValidateDatabaseSection(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Database.User = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Database.MaxConns = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRedisOnlyWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Redis.Enabled = false
	cfg.Redis.Addr = ""
	assert.NoError(t, cfg.Validate(), "a disabled redis section is not validated")
}

func TestValidateKafkaOnlyWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Kafka.Enabled = true
	cfg.Kafka.Brokers = nil
	assert.Error(t, cfg.Validate())

	cfg.Kafka.Brokers = []string{"localhost:9092"}
	assert.NoError(t, cfg.Validate())
}

func TestValidateLogSection(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateTimelinePolicy(t *testing.T) {
	cfg := validConfig()
	cfg.Timeline.BusinessToCalendarRatio = 0.5
	assert.Error(t, cfg.Validate(), "a ratio below 1 would shrink calendar windows")
}

//Personal.AI order the ending
