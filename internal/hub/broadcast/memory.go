package broadcast

import (
	"context"
	"sync"
)

// InMemoryBroadcaster records published updates per channel. Used by tests.
type InMemoryBroadcaster struct {
	mu      sync.Mutex
	updates map[string][]Update
}

// NewInMemoryBroadcaster creates an empty in-memory broadcaster.
func NewInMemoryBroadcaster() *InMemoryBroadcaster {
	return &InMemoryBroadcaster{updates: make(map[string][]Update)}
}

func (b *InMemoryBroadcaster) Broadcast(ctx context.Context, u Update) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, channel := range u.Channels() {
		b.updates[channel] = append(b.updates[channel], u)
	}
	return nil
}

// Updates returns the updates published to one channel.
func (b *InMemoryBroadcaster) Updates(channel string) []Update {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Update(nil), b.updates[channel]...)
}

// Channels returns every channel that received at least one update.
func (b *InMemoryBroadcaster) Channels() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.updates))
	for c := range b.updates {
		out = append(out, c)
	}
	return out
}
