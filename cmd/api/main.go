package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prawn-monitoring/internal/adapters/backend"
	rediscache "prawn-monitoring/internal/adapters/cache/redis"
	"prawn-monitoring/internal/adapters/sensors/simulated"
	mem "prawn-monitoring/internal/adapters/storage/memory"
	pg "prawn-monitoring/internal/adapters/storage/postgres"
	"prawn-monitoring/internal/config"
	"prawn-monitoring/internal/domain/sensors"
	"prawn-monitoring/internal/middleware"
	"prawn-monitoring/internal/platform/logger"
	"prawn-monitoring/internal/router"
)

// @title Prawn Monitoring API
// @version 1.0
// @description Estimación de conteo, monitoreo de calidad del agua y diagnóstico para estanques de camarón.
// @BasePath /
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		log := logger.NewFromEnv()
		log.Error("invalid configuration", map[string]any{"error": err})
		_ = log.Sync()
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.BackendTimeout(),
	})
	if err != nil {
		log.Error("invalid backend url", map[string]any{"error": err})
		return err
	}

	// Postgres opcional: sin DB_DSN el historial vive en memoria
	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"error": err})
			return err
		}
		defer db.Close()

		if err := pg.EnsureSchema(ctx, db); err != nil {
			log.Error("postgres schema", map[string]any{"error": err})
			return err
		}
	}

	var cache sensors.SnapshotCache = mem.NewSnapshotCache(rediscache.DefaultTTL)
	if cfg.RedisAddr != "" {
		rc := rediscache.NewSnapshotCache(rediscache.Options{Addr: cfg.RedisAddr})
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unavailable, using in-memory sensor cache", map[string]any{"error": err, "addr": cfg.RedisAddr})
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	var source sensors.Source
	switch cfg.Sensors.Source {
	case config.SensorSourceRemote:
		source = backend.NewRemoteSource(client)
	default:
		source = simulated.New()
	}

	monitor := sensors.NewMonitor(source, cache, sensors.MonitorOptions{
		Interval:    cfg.SensorInterval(),
		HistorySize: cfg.Sensors.HistorySize,
		Logger:      log,
	})
	if err := monitor.Start(ctx); err != nil {
		log.Error("sensor monitor", map[string]any{"error": err})
		return err
	}
	defer func() {
		if err := monitor.Stop(); err != nil {
			log.Warn("sensor monitor stop", map[string]any{"error": err})
		}
	}()

	opts := router.Options{
		Logger:  log,
		DB:      db,
		Monitor: monitor,
	}
	if client.IsConfigured() {
		opts.Predictor = backend.NewPredictor(client)
		opts.Submitter = backend.NewDiagnosisSubmitter(client)
	} else {
		log.Warn("BACKEND_URL is empty; /estimate/predict and /diagnosis will return 502", nil)
	}
	if cfg.RateLimit.PerMinute > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, time.Minute)
		defer rl.Stop()
		opts.RateLimiter = rl
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":          cfg.Addr(),
			"sensor_source": cfg.Sensors.Source,
			"postgres":      db != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("server error", map[string]any{"error": err})
		return err
	case <-quit:
		log.Info("shutting down server", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", map[string]any{"error": err})
		return err
	}

	log.Info("server exited", nil)
	return nil
}
