// API server entry point for VisaPath-Intelligence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/VisaPath-Intelligence/internal/application/feasibility"
	"github.com/turtacn/VisaPath-Intelligence/internal/application/visaapp"
	"github.com/turtacn/VisaPath-Intelligence/internal/config"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/VisaPath-Intelligence/internal/interfaces/http"
	"github.com/turtacn/VisaPath-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/VisaPath-Intelligence/pkg/clock"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	migrateOnly := flag.Bool("migrate-only", false, "run schema migrations and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{cfg.Log.Output},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	logger = logger.Named("visapath")

	logger.Info("starting VisaPath-Intelligence API server",
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Server.Mode))

	// Database
	conn, err := postgres.NewConnection(postgres.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Database:        cfg.Database.DBName,
		Username:        cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}, logger)
	if err != nil {
		logger.Fatal("database connection failed", logging.Err(err))
	}
	defer conn.Close()

	if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
		logger.Fatal("schema migration failed", logging.Err(err))
	}
	if *migrateOnly {
		logger.Info("migrations complete, exiting")
		return
	}

	// Requirement cache (optional)
	var requirementCache visa.Cache
	var probeCache redis.Cache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&redis.RedisConfig{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logger)
		if err != nil {
			logger.Fatal("redis connection failed", logging.Err(err))
		}
		defer redisClient.Close()

		cache := redis.NewRedisCache(redisClient, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.RequirementTTL))
		requirementCache = cache
		probeCache = cache
	} else {
		logger.Info("requirement cache disabled, lookups go straight to the database")
	}

	// Event bus (optional)
	var notifier visaapp.Notifier
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Acks:         cfg.Kafka.Acks,
			MaxRetries:   cfg.Kafka.ProducerRetries,
			BatchSize:    cfg.Kafka.BatchSize,
			BatchTimeout: cfg.Kafka.BatchTimeout,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, logger)
		if err != nil {
			logger.Fatal("kafka producer init failed", logging.Err(err))
		}
		defer producer.Close()
		notifier = kafka.NewStatusNotifier(producer, logger)
	} else {
		logger.Info("event bus disabled, status changes stay local")
	}

	// Metrics (optional)
	var appMetrics *prometheus.AppMetrics
	var collector prometheus.MetricsCollector
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			logger.Fatal("metrics collector init failed", logging.Err(err))
		}
		appMetrics = prometheus.NewAppMetrics(collector)
	}

	// Repositories
	requirementRepo := repositories.NewPostgresRequirementRepo(conn, logger)
	tripRepo := repositories.NewPostgresTripRepo(conn, logger)
	applicationRepo := repositories.NewPostgresApplicationRepo(conn, logger)
	milestoneRepo := repositories.NewPostgresMilestoneRepo(conn, logger)

	// Services
	clk := clock.System()
	resolver := visa.NewResolver(requirementRepo, requirementCache, logger,
		visa.WithCacheTTL(cfg.Redis.RequirementTTL),
		visa.WithNegativeCacheTTL(cfg.Redis.NegativeTTL))
	timelineSvc := timeline.NewService(cfg.Timeline, clk)
	feasibilitySvc := feasibility.NewService(tripRepo, timelineSvc, clk, logger)
	visaappSvc := visaapp.NewService(applicationRepo, milestoneRepo, tripRepo,
		timelineSvc, notifier, clk, logger)

	// Hot reload: only the settings that are safe to change on a running
	// process are applied; everything else takes effect on the next restart.
	if _, statErr := os.Stat(*configPath); statErr == nil {
		config.Watch(*configPath, func(next *config.Config) {
			timelineSvc.UpdatePolicy(next.Timeline)
			if ls, ok := logger.(logging.LevelSetter); ok {
				ls.SetLevel(next.Log.Level)
			}
			logger.Info("configuration reloaded",
				logging.String("log_level", next.Log.Level))
		})
	}

	// HTTP interface
	router := httpserver.NewRouter(cfg, logger, httpserver.RouterDeps{
		Requirements: handlers.NewRequirementHandler(resolver, logger),
		Feasibility:  handlers.NewFeasibilityHandler(feasibilitySvc, logger),
		Applications: handlers.NewApplicationHandler(visaappSvc, logger),
		Health:       handlers.NewHealthHandler(conn, probeCache, logger),
		Metrics:      appMetrics,
		Collector:    collector,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped unexpectedly", logging.Err(err))
		}
	}

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("graceful shutdown failed", logging.Err(err))
	}
	logger.Info("server stopped")
}

// loadConfig loads from the file when present and falls back to environment
// variables, so containerised deployments need no config file at all.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

//Personal.AI order the ending
