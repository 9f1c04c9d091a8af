package service

import (
	"context"
	"fmt"
	"strconv"

	"hrhub/internal/event"
	"hrhub/internal/platform/kafka/producer"
)

// KafkaPublisher adapts the platform Kafka producer to the service's
// Publisher interface. Messages are keyed by employee ID so mutations to
// one record land on one partition.
type KafkaPublisher struct {
	producer *producer.Producer
}

// NewKafkaPublisher wraps a connected producer.
func NewKafkaPublisher(p *producer.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: p}
}

// Publish encodes the envelope and produces it synchronously.
func (k *KafkaPublisher) Publish(ctx context.Context, env event.Envelope) error {
	value, err := env.Marshal()
	if err != nil {
		return err
	}

	key := []byte(env.EventID)
	if env.Data.EmployeeID != nil {
		key = []byte(strconv.FormatInt(*env.Data.EmployeeID, 10))
	}

	if err := k.producer.Produce(ctx, key, value); err != nil {
		return fmt.Errorf("publish %s: %w", env.EventType, err)
	}
	return nil
}
