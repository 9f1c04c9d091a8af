package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"
)

// Message is the transport-agnostic view of one queued record.
type Message struct {
	Topic string
	Key   []byte
	Value []byte
}

// Handler processes a single message. Returning an error triggers bounded
// redelivery with fixed backoff; after attempts are exhausted the message is
// logged as permanently failed and committed anyway (no dead-letter store).
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// Config tunes the consumer group.
type Config struct {
	Brokers      []string
	Topic        string
	Group        string
	Workers      int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// Consumer pulls records from a Kafka consumer group and fans them out to a
// bounded worker pool. Offsets are committed per poll batch after every
// record in the batch has been handled, preserving at-least-once delivery.
type Consumer struct {
	client  *kgo.Client
	handler Handler
	cfg     Config
	logger  *slog.Logger
}

// New connects the consumer group. Workers, MaxAttempts and RetryBackoff
// fall back to safe defaults when unset.
func New(cfg Config, handler Handler, logger *slog.Logger) (*Consumer, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 10 * time.Second
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer client: %w", err)
	}

	return &Consumer{client: client, handler: handler, cfg: cfg, logger: logger}, nil
}

// Run polls until the context is cancelled. It returns nil on clean shutdown.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.Error("fetch error",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})

		var records []*kgo.Record
		fetches.EachRecord(func(r *kgo.Record) {
			records = append(records, r)
		})
		if len(records) == 0 {
			continue
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.cfg.Workers)
		for _, record := range records {
			g.Go(func() error {
				c.process(gctx, record)
				return nil
			})
		}
		_ = g.Wait()

		if err := c.client.CommitUncommittedOffsets(ctx); err != nil {
			// Redelivery of the whole batch is acceptable: handlers are
			// idempotent by full rebuild.
			c.logger.Error("offset commit failed", "error", err)
		}
	}
}

// process runs the handler with bounded retries and fixed backoff,
// mirroring the queue semantics of the original job runner.
func (c *Consumer) process(ctx context.Context, record *kgo.Record) {
	msg := &Message{Topic: record.Topic, Key: record.Key, Value: record.Value}

	var err error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if err = c.handler.Handle(ctx, msg); err == nil {
			return
		}

		c.logger.Warn("message handling failed",
			"topic", msg.Topic,
			"key", string(msg.Key),
			"attempt", attempt,
			"max_attempts", c.cfg.MaxAttempts,
			"error", err,
		)

		if attempt < c.cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.cfg.RetryBackoff):
			}
		}
	}

	// Log the full payload so a dropped message can be replayed by hand.
	c.logger.Error("message permanently failed, dropping",
		"topic", msg.Topic,
		"key", string(msg.Key),
		"payload", string(msg.Value),
		"error", err,
	)
}

// Close leaves the group and releases the client.
func (c *Consumer) Close() {
	c.client.Close()
}
