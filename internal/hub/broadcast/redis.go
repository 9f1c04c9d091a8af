package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster publishes updates over Redis pub/sub, one PUBLISH per
// channel scope. Subscribers (the websocket gateway) are outside this
// service.
type RedisBroadcaster struct {
	client *redis.Client
}

// NewRedisBroadcaster wraps a connected client.
func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

func (b *RedisBroadcaster) Broadcast(ctx context.Context, u Update) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal broadcast update: %w", err)
	}

	for _, channel := range u.Channels() {
		if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
			return fmt.Errorf("publish to %s: %w", channel, err)
		}
	}
	return nil
}
