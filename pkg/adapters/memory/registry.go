package memory

import (
	"context"
	"sync"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/editor"
)

// Registry implements ports.SessionRegistry in memory.
// Safe for concurrent use; the sessions themselves are not.
type Registry struct {
	data map[string]*editor.Session
	mu   sync.RWMutex
}

// NewRegistry creates an empty in-memory registry.
func NewRegistry() *Registry {
	return &Registry{
		data: make(map[string]*editor.Session),
	}
}

// Put registers a session.
func (r *Registry) Put(ctx context.Context, sessionID string, s *editor.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[sessionID] = s
	return nil
}

// Get returns the live session.
func (r *Registry) Get(ctx context.Context, sessionID string) (*editor.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Delete removes the session.
func (r *Registry) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, sessionID)
	return nil
}

// List returns registered session IDs.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.data))
	for id := range r.data {
		ids = append(ids, id)
	}
	return ids, nil
}
