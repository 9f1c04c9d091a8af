package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hrhub/internal/hub/broadcast"
	"hrhub/internal/hub/cache"
	"hrhub/internal/hub/checklist"
	"hrhub/internal/hub/consumer"
	"hrhub/internal/hub/handler"
	"hrhub/internal/hub/hrclient"
	"hrhub/internal/hub/metrics"
	"hrhub/internal/hub/service"
	"hrhub/internal/hub/validator"
	"hrhub/internal/platform/config"
	"hrhub/internal/platform/httpserver"
	kafkaconsumer "hrhub/internal/platform/kafka/consumer"
	"hrhub/internal/platform/logger"
	"hrhub/internal/platform/middleware"
	platformredis "hrhub/internal/platform/redis"
)

// main wires the aggregator: the event consumer that keeps the derived
// cache fresh, and the read API that serves it.
func main() {
	cfg := config.HubFromEnv()
	log := logger.New("hub-service")

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis init failed", "url", cfg.RedisURL, "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	coordinator := cache.NewCoordinator(cache.NewRedisStore(redisClient.Client), cfg.CacheTTL, log)
	source := hrclient.New(cfg.HRBaseURL, log)
	engine := checklist.NewEngine(validator.NewRegistry(), log)
	broadcaster := broadcast.NewRedisBroadcaster(redisClient.Client)
	pipelineMetrics := metrics.New()

	pipeline := consumer.New(coordinator, source, engine, broadcaster, log,
		consumer.WithMetrics(pipelineMetrics))

	queue, err := kafkaconsumer.New(kafkaconsumer.Config{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaTopic,
		Group:        cfg.KafkaGroup,
		Workers:      cfg.Workers,
		MaxAttempts:  cfg.MaxAttempts,
		RetryBackoff: cfg.RetryBackoff,
	}, pipeline, log)
	if err != nil {
		log.Error("kafka consumer init failed", "brokers", cfg.KafkaBrokers, "error", err)
		os.Exit(1)
	}
	defer queue.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := redisClient.Health(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	handler.New(service.New(coordinator, source, engine, log)).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	go func() {
		if err := queue.Run(runCtx); err != nil {
			log.Error("consumer stopped", "error", err)
			stop()
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("starting hub-service",
		"addr", cfg.Addr,
		"topic", cfg.KafkaTopic,
		"group", cfg.KafkaGroup,
		"workers", cfg.Workers,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case <-runCtx.Done():
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
