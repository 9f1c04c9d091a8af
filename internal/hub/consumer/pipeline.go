// Package consumer turns a queued employee-change envelope into a fresh
// cached aggregate and a real-time broadcast.
//
// Every successful run recomputes the country aggregate from the current
// authoritative state instead of applying the envelope's diff. That is the
// property that makes at-least-once, possibly-reordered delivery safe: the
// worst outcome of misordering is a transient reversion to an
// older-but-accurate snapshot until the next event or TTL expiry.
package consumer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hrhub/internal/event"
	"hrhub/internal/hub/broadcast"
	"hrhub/internal/hub/cache"
	"hrhub/internal/hub/checklist"
	"hrhub/internal/hub/metrics"
	"hrhub/internal/hub/models"
	kafkaconsumer "hrhub/internal/platform/kafka/consumer"
)

// SourceClient fetches a country's full employee set. complete=false means
// the set may be truncated by an upstream failure.
type SourceClient interface {
	FetchByCountry(ctx context.Context, country string) (employees []models.Employee, complete bool)
}

// Pipeline processes one envelope per Handle call:
// invalidate, refetch, aggregate, cache, broadcast.
type Pipeline struct {
	cache       *cache.Coordinator
	source      SourceClient
	engine      *checklist.Engine
	broadcaster broadcast.Broadcaster
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// New wires the pipeline. All collaborators are required except metrics.
func New(
	c *cache.Coordinator,
	source SourceClient,
	engine *checklist.Engine,
	broadcaster broadcast.Broadcaster,
	logger *slog.Logger,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		cache:       c,
		source:      source,
		engine:      engine,
		broadcaster: broadcaster,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle implements the queue handler. A returned error surfaces to the
// queue's bounded retry; a nil return commits the message.
//
// Unprocessable envelopes (undecodable, or missing the country) return nil:
// redelivering them can never succeed.
func (p *Pipeline) Handle(ctx context.Context, msg *kafkaconsumer.Message) error {
	env, err := event.Unmarshal(msg.Value)
	if err != nil {
		p.dropped()
		p.logger.Warn("dropping undecodable envelope", "key", string(msg.Key), "error", err)
		return nil
	}

	log := p.logger.With(
		"event_type", env.EventType,
		"event_id", env.EventID,
		"country", env.Country,
	)

	if err := env.Validate(); err != nil {
		p.dropped()
		log.Warn("dropping envelope without country")
		return nil
	}

	log.Info("processing employee event", "employee_id", idValue(env.Data.EmployeeID))
	start := time.Now()

	// Invalidate first so a concurrent read-path miss recomputes from
	// fresh authoritative data even before our rebuild lands. Store
	// errors are absorbed inside the coordinator.
	p.cache.InvalidateForEmployee(ctx, env.Data.EmployeeID, env.Country)

	employees, complete := p.source.FetchByCountry(ctx, env.Country)
	if !complete {
		if p.metrics != nil {
			p.metrics.PartialFetches.Inc()
			p.metrics.EventsFailed.Inc()
		}
		// Do not cache a truncated aggregate; the cached value stays the
		// older-but-accurate snapshot and redelivery rebuilds later.
		return fmt.Errorf("incomplete employee fetch for %s (%d records)", env.Country, len(employees))
	}

	report := p.engine.BuildReport(employees)

	if err := p.cache.Put(ctx, cache.ChecklistKey(env.Country), report); err != nil {
		// Absorbed: consistency degrades to TTL-bound staleness.
		log.Warn("checklist cache write failed", "error", err)
	} else {
		log.Info("checklist cache refreshed",
			"employees", len(employees),
			"completion", report.Summary.OverallCompletion,
		)
	}

	p.broadcastUpdate(ctx, env, report.Summary, log)

	if p.metrics != nil {
		p.metrics.EventsProcessed.WithLabelValues(string(env.EventType)).Inc()
		p.metrics.ObserveRebuild(time.Since(start))
	}
	return nil
}

// broadcastUpdate publishes the fan-out message. Failures are logged and
// absorbed: they must not undo or retry the cache write that already
// happened.
func (p *Pipeline) broadcastUpdate(ctx context.Context, env event.Envelope, summary checklist.Summary, log *slog.Logger) {
	update := broadcast.Update{
		EventType:        env.EventType,
		EmployeeID:       env.Data.EmployeeID,
		Country:          env.Country,
		Employee:         env.Data.Employee,
		ChecklistSummary: summary,
		Timestamp:        time.Now().UTC(),
	}

	if err := p.broadcaster.Broadcast(ctx, update); err != nil {
		if p.metrics != nil {
			p.metrics.BroadcastFailures.Inc()
		}
		log.Error("broadcast failed", "error", err)
		return
	}
	log.Info("broadcast sent", "channels", update.Channels())
}

func (p *Pipeline) dropped() {
	if p.metrics != nil {
		p.metrics.EventsDropped.Inc()
	}
}

func idValue(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
