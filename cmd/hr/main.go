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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hrhub/internal/hr/handler"
	"hrhub/internal/hr/service"
	"hrhub/internal/hr/store"
	"hrhub/internal/platform/config"
	"hrhub/internal/platform/httpserver"
	kafkaproducer "hrhub/internal/platform/kafka/producer"
	"hrhub/internal/platform/logger"
	"hrhub/internal/platform/middleware"
)

// main wires the authoritative employee service: storage, the event
// producer, and the CRUD API. Business logic lives in internal/hr.
func main() {
	cfg := config.HRFromEnv()
	log := logger.New("hr-service")
	ctx := context.Background()

	employeeStore, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Error("store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	producer, err := kafkaproducer.New(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Error("kafka producer init failed", "brokers", cfg.KafkaBrokers, "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	svc := service.New(employeeStore, service.NewKafkaPublisher(producer), service.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting hr-service", "addr", cfg.Addr, "topic", cfg.KafkaTopic)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// buildStore selects postgres when a DSN is configured, the in-memory store
// otherwise. The in-memory store keeps local development free of external
// services.
func buildStore(cfg config.HR) (store.EmployeeStore, func(), error) {
	if cfg.PostgresDSN == "" {
		return store.NewInMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	pg := store.NewPostgresStore(db)
	if err := pg.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, nil, err
	}
	return pg, func() { db.Close() }, nil
}
