package router

import (
	"context"
	"database/sql"
	"net/http"

	"prawn-monitoring/internal/adapters/sensors/simulated"
	mem "prawn-monitoring/internal/adapters/storage/memory"
	pg "prawn-monitoring/internal/adapters/storage/postgres"
	"prawn-monitoring/internal/domain/diagnosis"
	"prawn-monitoring/internal/domain/estimation"
	"prawn-monitoring/internal/domain/sensors"
	"prawn-monitoring/internal/middleware"
	"prawn-monitoring/internal/platform/logger"

	_ "prawn-monitoring/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// memoryHistorySize acota el historial de estimaciones sin Postgres.
const memoryHistorySize = 1000

type Options struct {
	Logger logger.Logger // nil = descarta

	// Opcional: si viene, el historial de estimaciones va a Postgres.
	// Si no, in-memory.
	DB *sql.DB

	// Monitor de sensores ya construido (y normalmente ya arrancado).
	// Si es nil se usa la fuente simulada leyendo a demanda.
	Monitor *sensors.Monitor

	// Backend externo. nil = esas rutas responden 502.
	Predictor estimation.Predictor
	Submitter diagnosis.Submitter

	// RateLimiter protege POST /diagnosis. nil = sin límite.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var estimationRepo estimation.Repository
	if opts.DB != nil {
		estimationRepo = pg.NewEstimationsRepo(opts.DB)
	} else {
		estimationRepo = mem.NewEstimationRepo(memoryHistorySize)
	}

	monitor := opts.Monitor
	if monitor == nil {
		src := simulated.New()
		// la fuente simulada no tiene goroutines; sin cron se lee a demanda
		_ = src.Start(context.Background())
		monitor = sensors.NewMonitor(src, mem.NewSnapshotCache(0), sensors.MonitorOptions{Logger: log})
	}

	var limit func(http.Handler) http.Handler
	if opts.RateLimiter != nil {
		limit = middleware.RateLimit(opts.RateLimiter)
	}

	// Services por módulo
	estimationSvc := estimation.NewService(estimationRepo, opts.Predictor)
	diagnosisSvc := diagnosis.NewService(opts.Submitter, monitor)

	// Rutas por módulo
	estimation.RegisterRoutes(r, estimationSvc)
	sensors.RegisterRoutes(r, monitor)
	diagnosis.RegisterRoutes(r, diagnosisSvc, limit)

	return r
}
