package config

import (
	"time"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
)

// ApplyDefaults fills every unset field of cfg with the engine's default
// value.  It never overrides a value that was set explicitly, so partial
// configuration files and env-only deployments both work.
func ApplyDefaults(cfg *Config) {
	// Server
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "visapath"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "visapath"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 5 * time.Minute
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = "migrations"
	}

	// Redis
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "visapath:"
	}
	if cfg.Redis.RequirementTTL == 0 {
		cfg.Redis.RequirementTTL = 12 * time.Hour
	}
	if cfg.Redis.NegativeTTL == 0 {
		cfg.Redis.NegativeTTL = 15 * time.Minute
	}

	// Kafka
	if cfg.Kafka.Acks == "" {
		cfg.Kafka.Acks = "all"
	}
	if cfg.Kafka.ProducerRetries == 0 {
		cfg.Kafka.ProducerRetries = 3
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	// Metrics
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "visapath"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	applyTimelineDefaults(&cfg.Timeline)
}

// applyTimelineDefaults fills unset policy fields from the shipped policy so
// operators can override a single value without restating the whole section.
func applyTimelineDefaults(p *timeline.Policy) {
	def := timeline.DefaultPolicy()

	if p.BusinessToCalendarRatio == 0 {
		p.BusinessToCalendarRatio = def.BusinessToCalendarRatio
	}
	if p.PrepWindowDays == 0 {
		p.PrepWindowDays = def.PrepWindowDays
	}
	if p.PreArrivalWindowDays == 0 {
		p.PreArrivalWindowDays = def.PreArrivalWindowDays
	}
	if p.PeakBufferMultiplier == 0 {
		p.PeakBufferMultiplier = def.PeakBufferMultiplier
	}
	if len(p.BufferDaysByVisaType) == 0 {
		p.BufferDaysByVisaType = def.BufferDaysByVisaType
	}
	if p.DefaultBufferDays == 0 {
		p.DefaultBufferDays = def.DefaultBufferDays
	}
	if p.SafetyBufferDays == 0 {
		p.SafetyBufferDays = def.SafetyBufferDays
	}
	if p.DefaultReminderDaysBefore == 0 {
		p.DefaultReminderDaysBefore = def.DefaultReminderDaysBefore
	}
	if len(p.Seasons.Global) == 0 && len(p.Seasons.ByCountry) == 0 {
		p.Seasons = def.Seasons
	}
}

//Personal.AI order the ending
