package ports

import (
	"context"

	"github.com/aretw0/tessera/pkg/editor"
)

// SessionRegistry holds live editor sessions. Sessions are in-memory objects;
// a registry never serializes them.
type SessionRegistry interface {
	// Put registers a session under the given ID, replacing any previous one.
	Put(ctx context.Context, sessionID string, s *editor.Session) error

	// Get returns the session for the given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Get(ctx context.Context, sessionID string) (*editor.Session, error)

	// Delete removes the session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the registered session IDs in no particular order.
	List(ctx context.Context) ([]string, error)
}
