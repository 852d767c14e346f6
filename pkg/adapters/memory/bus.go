package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/tessera/internal/logging"
)

// subscriberBuffer is the per-subscriber backlog before messages are dropped.
const subscriberBuffer = 16

// Bus implements ports.EventBus within a single process.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

// NewBus creates an in-process event bus. A nil logger discards logs.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bus{
		subscribers: make(map[string]map[chan string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for the session.
func (b *Bus) Subscribe(ctx context.Context, sessionID string) (<-chan string, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan string, subscriberBuffer)
	if _, ok := b.subscribers[sessionID]; !ok {
		b.subscribers[sessionID] = make(map[chan string]struct{})
	}
	b.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if subs, ok := b.subscribers[sessionID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(b.subscribers, sessionID)
				}
			}
			close(ch)
		})
	}, nil
}

// Publish delivers msg to current subscribers without blocking.
func (b *Bus) Publish(ctx context.Context, sessionID string, msg string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			b.logger.Warn("Subscriber buffer full, dropping event", "session_id", sessionID)
		}
	}
	return nil
}

// Subscribers reports how many subscribers a session has.
func (b *Bus) Subscribers(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[sessionID])
}
