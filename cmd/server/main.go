package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medialens/internal/audit"
	"medialens/internal/extraction"
	"medialens/internal/platform/config"
	"medialens/internal/platform/httpserver"
	"medialens/internal/platform/logger"
	platformredis "medialens/internal/platform/redis"
	"medialens/internal/screening/handler"
	"medialens/internal/screening/metrics"
	"medialens/internal/screening/policy"
	"medialens/internal/screening/service"
	"medialens/pkg/platform/httputil"
	"medialens/pkg/platform/middleware/requestid"
	"medialens/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slogFatal := func(msg string, err error) {
		log.Error(msg, "error", err)
		os.Exit(1)
	}

	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		slogFatal("policy load failed", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Extractor: live model client when an API key is configured, otherwise
	// the deterministic stub for demo mode.
	var extractor extraction.Extractor
	if cfg.Extractor.APIKey != "" {
		extractor = extraction.NewOpenAIExtractor(cfg.Extractor)
	} else {
		log.Warn("OPENAI_API_KEY not set, using stub extractor")
		extractor = extraction.NewStub()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		slogFatal("redis connect failed", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		extractor = extraction.NewCachedExtractor(extractor, redisClient, cfg.Redis.CacheTTL, log)
		log.Info("extraction cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	// Audit trail: postgres when a DSN is configured, in-memory otherwise.
	var auditStore audit.Store = audit.NewMemoryStore()
	if cfg.AuditDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.AuditDSN)
		if err != nil {
			slogFatal("audit database connect failed", err)
		}
		defer pool.Close()

		pgStore := audit.NewPostgresStore(pool)
		if err := pgStore.Init(ctx); err != nil {
			slogFatal("audit schema init failed", err)
		}
		auditStore = pgStore
	}
	auditQueue := audit.NewQueue(auditStore, 256)
	auditWorker := audit.NewWorker(auditStore, auditQueue.Inbox(), log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	m := metrics.New()
	svc, err := service.New(extractor, &pol,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(audit.NewPublisher(auditQueue)),
		service.WithWorkers(cfg.Workers),
		service.WithExtractTimeout(cfg.Extractor.Timeout),
	)
	if err != nil {
		slogFatal("service init failed", err)
	}

	router := chi.NewRouter()
	router.Use(requestid.Middleware)
	router.Use(requesttime.Middleware)

	handler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if redisClient != nil {
			// A degraded cache slows checks down but never fails them.
			body["extraction_cache"] = "healthy"
			if err := redisClient.Health(r.Context()); err != nil {
				body["extraction_cache"] = "unreachable"
			}
		}
		httputil.WriteJSON(w, http.StatusOK, body)
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting medialens", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogFatal("server error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogFatal("graceful shutdown failed", err)
	}
	log.Info("server stopped")
}
