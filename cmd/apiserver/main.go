// Command apiserver runs the prazojus HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/juristech/prazojus/internal/config"
	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/domain/deadline"
	"github.com/juristech/prazojus/internal/infrastructure/database/postgres"
	"github.com/juristech/prazojus/internal/infrastructure/database/postgres/repositories"
	"github.com/juristech/prazojus/internal/infrastructure/database/redis"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/juristech/prazojus/internal/interfaces/http"
	"github.com/juristech/prazojus/internal/interfaces/http/handlers"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: PRAZO_* environment)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		return err
	}
	log = log.Named("apiserver")

	metrics := prometheus.NewMetrics()

	conn, err := postgres.NewConnection(cfg.Database, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.Database.MigrationPath != "" {
		if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
			return err
		}
	}

	holidayRepo := repositories.NewHolidayRepository(conn.DB(), log)
	deadlineRepo := repositories.NewDeadlineRepository(conn.DB(), log)

	// The engine reads through Redis when configured; the decorator is
	// skipped entirely when redis.addr is blank.
	var store calendar.HolidayStore = holidayRepo
	var invalidator handlers.CacheInvalidator
	healthChecks := map[string]handlers.HealthChecker{"postgres": conn}

	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewClient(cfg.Redis, log)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		cached := redis.NewCachedHolidayStore(holidayRepo, redisClient, log, cfg.Redis.KeyPrefix, cfg.Redis.DefaultTTL)
		store = cached
		invalidator = cached
		healthChecks["redis"] = redisHealth{redisClient}
	}

	countingStore := instrumentedStore{inner: store, metrics: metrics}
	cache := calendar.NewResultCacheWithEvictionHook(cfg.Calendar.CacheCapacity, func() {
		metrics.CacheEvictions.Inc()
	})
	engine := calendar.NewEngine(countingStore, cache, log,
		calendar.WithWindow(cfg.Calendar.InitialMarginDays, cfg.Calendar.GrowthIncrementDays, cfg.Calendar.LookaheadDays),
		calendar.WithMaxWindowGrowths(cfg.Calendar.MaxWindowGrowths),
		calendar.WithCacheEvents(
			func() { metrics.CacheHitsTotal.Inc() },
			func() { metrics.CacheMissesTotal.Inc() },
		),
	)

	deadlineService := deadline.NewService(deadlineRepo, engine, log)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Deadlines: handlers.NewDeadlineHandler(engine, deadlineService, metrics),
		Holidays:  handlers.NewHolidayHandler(holidayRepo, engine, invalidator, log),
		Health:    handlers.NewHealthHandler(healthChecks),
		Metrics:   metrics,
		Log:       log,
		Mode:      cfg.Server.Mode,
	})
	server := httpapi.NewServer(cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutdown signal received", logging.String("signal", sig.String()))
		return server.Stop(context.Background())
	}
}
