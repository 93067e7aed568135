package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docready/internal/audit"
	"docready/internal/jwtauth"
	"docready/internal/platform/config"
	"docready/internal/platform/httpserver"
	"docready/internal/platform/logger"
	"docready/internal/platform/middleware"
	platformredis "docready/internal/platform/redis"
	"docready/internal/recommendation"
	"docready/internal/recommendation/handler"
	"docready/internal/recommendation/metrics"
	"docready/internal/recommendation/service"
	"docready/internal/recommendation/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	// Durable store: PostgreSQL when configured, otherwise in-memory.
	var evaluations store.EvaluationStore
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}
		evaluations = store.NewPostgres(db)
		log.Info("using postgres evaluation store")
	} else {
		evaluations = store.NewInMemoryStore()
		log.Info("using in-memory evaluation store")
	}

	serviceOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	}

	// Optional Redis cache in front of the store.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		serviceOpts = append(serviceOpts, service.WithCache(store.NewRedisCache(redisClient.Client)))
		log.Info("evaluation cache enabled")
	}

	// Audit trail: Kafka when configured, otherwise in-process memory.
	var auditSink audit.Store = audit.NewInMemoryStore()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = kafkaSink.Close(ctx)
		}()
		auditSink = kafkaSink
		log.Info("kafka audit sink enabled", "topic", cfg.Kafka.Topic)
	}
	auditPublisher := audit.NewPublisher(auditSink, audit.WithAsyncBuffer(256))
	defer auditPublisher.Close()
	serviceOpts = append(serviceOpts, service.WithAuditPublisher(auditPublisher))

	engine := recommendation.NewEngine()
	svc := service.New(engine, evaluations, serviceOpts...)

	jwtService := jwtauth.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	recHandler := handler.New(svc, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtauth.NewAdapter(jwtService), log))
		recHandler.Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting docready server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
