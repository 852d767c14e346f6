package ports

import "context"

// EventBus broadcasts serialized layout events to subscribers of a session.
type EventBus interface {
	// Publish delivers msg to every current subscriber of sessionID.
	// Slow subscribers may miss messages; publishing never blocks on them.
	Publish(ctx context.Context, sessionID string, msg string) error

	// Subscribe returns a channel of messages for sessionID and a cancel
	// function that MUST be called to release the subscription. The channel
	// is closed after cancel.
	Subscribe(ctx context.Context, sessionID string) (<-chan string, func(), error)
}
