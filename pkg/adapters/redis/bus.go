package redis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/tessera/internal/logging"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the pub/sub channels.
const DefaultPrefix = "tessera:"

// Bus implements ports.EventBus on Redis Pub/Sub, so every replica serving a
// UI can relay layout events no matter which replica applied the change.
type Bus struct {
	client *backend.Client
	prefix string
	logger *slog.Logger
}

// Option configures the Bus.
type Option func(*Bus)

// WithPrefix overrides the channel prefix.
func WithPrefix(prefix string) Option {
	return func(b *Bus) {
		b.prefix = prefix
	}
}

// WithLogger sets a logger for delivery problems.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Bus {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Bus {
	b := &Bus{
		client: client,
		prefix: DefaultPrefix,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bus) channel(sessionID string) string {
	return b.prefix + "events:" + sessionID
}

// Publish sends msg on the session channel.
func (b *Bus) Publish(ctx context.Context, sessionID string, msg string) error {
	if err := b.client.Publish(ctx, b.channel(sessionID), msg).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// Subscribe listens on the session channel. The subscription is confirmed
// before returning, so messages published afterwards are not lost.
func (b *Bus) Subscribe(ctx context.Context, sessionID string) (<-chan string, func(), error) {
	pubsub := b.client.Subscribe(ctx, b.channel(sessionID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	out := make(chan string, 16)
	done := make(chan struct{})
	in := pubsub.Channel()

	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				default:
					b.logger.Warn("Subscriber buffer full, dropping event", "session_id", sessionID)
				}
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			close(done)
			if err := pubsub.Close(); err != nil {
				b.logger.Warn("Failed to close redis subscription", "session_id", sessionID, "err", err)
			}
		})
	}, nil
}

// Close releases the underlying client.
func (b *Bus) Close() error {
	return b.client.Close()
}
