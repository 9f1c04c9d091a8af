// Package cache coordinates the hub's derived-view cache: deterministic key
// derivation, memoized compute-on-miss, and explicit plus prefix-based
// invalidation.
//
// Key structure (predictable and easy to invalidate):
//
//	checklist:{country}                      aggregated checklist for a country
//	employee:{id}                            single employee snapshot
//	employees:{country}:page:{n}:{perPage}   paginated employee list
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"hrhub/internal/platform/config"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_cache_hits_total",
		Help: "Cache reads served without recomputation",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_cache_misses_total",
		Help: "Cache reads that invoked the producer",
	})
	invalidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_cache_invalidation_failures_total",
		Help: "Invalidation attempts swallowed due to store errors",
	})
)

// ChecklistKey derives the cache key for a country's aggregate report.
func ChecklistKey(country string) string {
	return "checklist:" + country
}

// EmployeeKey derives the cache key for a single employee snapshot.
func EmployeeKey(employeeID int64) string {
	return fmt.Sprintf("employee:%d", employeeID)
}

// EmployeeListKey derives the cache key for one page of a country's
// employee list.
func EmployeeListKey(country string, page, perPage int) string {
	return fmt.Sprintf("employees:%s:page:%d:%d", country, page, perPage)
}

// EmployeeListPrefix covers every page variant for a country.
func EmployeeListPrefix(country string) string {
	return fmt.Sprintf("employees:%s:", country)
}

// Coordinator wraps a Store with memoization and tolerant invalidation.
// Storage errors never abort the surrounding pipeline: consistency is
// allowed to degrade to TTL-bound staleness instead of failing requests.
type Coordinator struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCoordinator creates a coordinator with the given default TTL;
// zero means config.DefaultCacheTTL.
func NewCoordinator(store Store, ttl time.Duration, logger *slog.Logger) *Coordinator {
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	return &Coordinator{store: store, ttl: ttl, logger: logger}
}

// TTL returns the default entry lifetime.
func (c *Coordinator) TTL() time.Duration {
	return c.ttl
}

// Put stores a fully-built value under key, unconditionally overwriting any
// concurrently-written entry (last-writer-wins). The write error is
// returned so callers can decide; pipeline callers log and continue.
func (c *Coordinator) Put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		return fmt.Errorf("cache put %s: %w", key, err)
	}
	return nil
}

// Invalidate removes one key. Store errors are logged and swallowed.
func (c *Coordinator) Invalidate(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		invalidationFailures.Inc()
		c.logger.Warn("cache invalidation failed", "key", key, "error", err)
		return
	}
	c.logger.Debug("cache invalidated", "key", key)
}

// InvalidateByPrefix removes all keys sharing a prefix, best-effort.
func (c *Coordinator) InvalidateByPrefix(ctx context.Context, prefix string) {
	if err := c.store.DeleteByPrefix(ctx, prefix); err != nil {
		invalidationFailures.Inc()
		c.logger.Warn("prefix invalidation failed", "prefix", prefix, "error", err)
	}
}

// InvalidateForEmployee clears everything an employee mutation can stale:
// the country checklist, the employee's own entry, and every page variant
// of the country's employee list.
func (c *Coordinator) InvalidateForEmployee(ctx context.Context, employeeID *int64, country string) {
	c.InvalidateByPrefix(ctx, EmployeeListPrefix(country))
	c.Invalidate(ctx, ChecklistKey(country))
	if employeeID != nil {
		c.Invalidate(ctx, EmployeeKey(*employeeID))
	}
}

// Remember returns the cached value for key, or invokes produce, stores the
// result under the default TTL, and returns it. Concurrent misses for the
// same key within this process share one produce call; nothing is
// guaranteed across processes, where last-writer-wins applies.
func Remember[T any](ctx context.Context, c *Coordinator, key string, produce func(ctx context.Context) (T, error)) (T, error) {
	if data, err := c.store.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			cacheHits.Inc()
			return v, nil
		}
		// Undecodable entries behave like misses; the rebuild overwrites them.
		c.logger.Warn("dropping undecodable cache entry", "key", key)
	}
	cacheMisses.Inc()

	result, err, _ := c.group.Do(key, func() (any, error) {
		v, err := produce(ctx)
		if err != nil {
			return v, err
		}
		if err := c.Put(ctx, key, v); err != nil {
			// Serve the computed value anyway; the next read recomputes.
			c.logger.Warn("cache write failed", "key", key, "error", err)
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}
