package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultCacheTTL bounds staleness of every derived cache entry. Checklist
// and paginated-list entries share it: 5 minutes is the ceiling on serving
// a stale aggregate even if every invalidating event is lost.
const DefaultCacheTTL = 300 * time.Second

// Hub captures configuration for the aggregator process.
type Hub struct {
	Addr         string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroup   string
	HRBaseURL    string
	CacheTTL     time.Duration
	Workers      int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// HR captures configuration for the authoritative employee service.
type HR struct {
	Addr         string
	PostgresDSN  string
	KafkaBrokers []string
	KafkaTopic   string
}

// HubFromEnv builds the hub config from environment variables so main stays lean.
func HubFromEnv() Hub {
	return Hub{
		Addr:         envOr("HUB_ADDR", ":8002"),
		RedisURL:     envOr("REDIS_URL", "redis://localhost:6379/0"),
		KafkaBrokers: splitList(envOr("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOr("KAFKA_TOPIC", "employee-events"),
		KafkaGroup:   envOr("KAFKA_GROUP", "hub-service"),
		HRBaseURL:    envOr("HR_SERVICE_URL", "http://localhost:8001"),
		CacheTTL:     envDuration("CACHE_TTL", DefaultCacheTTL),
		Workers:      envInt("CONSUMER_WORKERS", 4),
		MaxAttempts:  envInt("CONSUMER_MAX_ATTEMPTS", 3),
		RetryBackoff: envDuration("CONSUMER_RETRY_BACKOFF", 10*time.Second),
	}
}

// HRFromEnv builds the HR service config. An empty PostgresDSN selects the
// in-memory employee store.
func HRFromEnv() HR {
	return HR{
		Addr:         envOr("HR_ADDR", ":8001"),
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: splitList(envOr("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOr("KAFKA_TOPIC", "employee-events"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
