package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/editor"
	"github.com/aretw0/tessera/pkg/ports"
	"github.com/google/uuid"
)

// ErrNoEventBus is returned by Subscribe when the manager has no bus.
var ErrNoEventBus = errors.New("no event bus configured")

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	registry ports.SessionRegistry
	bus      ports.EventBus

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	editorOpts []editor.Option
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithEventBus publishes layout events after every change.
func WithEventBus(bus ports.EventBus) Option {
	return func(m *Manager) {
		m.bus = bus
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEditorOptions are applied to every session the Manager creates.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// NewManager creates a new Session Manager on top of the given registry.
func NewManager(registry ports.SessionRegistry, opts ...Option) *Manager {
	m := &Manager{
		registry: registry,
		locks:    make(map[string]*lockEntry),
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes fn while holding the lock for the session ID.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	return fn(ctx)
}

// WithSession loads the session and runs fn under its lock.
func (m *Manager) WithSession(ctx context.Context, sessionID string, fn func(context.Context, *editor.Session) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.registry.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		return fn(ctx, s)
	})
}

// Create starts a new session with an empty root and returns its ID.
func (m *Manager) Create(ctx context.Context) (string, error) {
	sessionID := uuid.NewString()
	opts := append(append([]editor.Option{editor.WithLogger(m.logger)}, m.editorOpts...), editor.WithID(sessionID))

	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.registry.Put(ctx, sessionID, editor.New(opts...))
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	m.logger.Info("Session created", "session_id", sessionID)
	return sessionID, nil
}

// Delete discards the session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := m.registry.Get(ctx, sessionID); err != nil {
			return err
		}
		return m.registry.Delete(ctx, sessionID)
	})
}

// List delegates to the registry.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.registry.List(ctx)
}

// View snapshots the current tree.
func (m *Manager) View(ctx context.Context, sessionID string) (domain.NodeView, error) {
	var view domain.NodeView
	err := m.WithSession(ctx, sessionID, func(ctx context.Context, s *editor.Session) error {
		view = s.Current().View()
		return nil
	})
	return view, err
}

// CanAccept is the drag-over check.
func (m *Manager) CanAccept(ctx context.Context, sessionID string, nodeID domain.NodeID, moduleID string) (bool, error) {
	var ok bool
	err := m.WithSession(ctx, sessionID, func(ctx context.Context, s *editor.Session) error {
		ok = s.CanAccept(nodeID, moduleID)
		return nil
	})
	return ok, err
}

// Drop applies a module to a node, re-checking the policy under the lock.
func (m *Manager) Drop(ctx context.Context, sessionID string, nodeID domain.NodeID, moduleID string) (domain.NodeView, error) {
	var view domain.NodeView
	err := m.WithSession(ctx, sessionID, func(ctx context.Context, s *editor.Session) error {
		if err := s.RequestDrop(ctx, nodeID, moduleID); err != nil {
			return err
		}
		view = s.Current().View()
		m.publish(ctx, sessionID, domain.EventSplit, nodeID, &view)
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrRejectedDrop) {
		m.logger.Warn("Drop failed", "session_id", sessionID, "node_id", nodeID, "module", moduleID, "err", err)
	}
	return view, err
}

// SetContent edits a leaf's text.
func (m *Manager) SetContent(ctx context.Context, sessionID string, nodeID domain.NodeID, text string) (domain.NodeView, error) {
	var view domain.NodeView
	err := m.WithSession(ctx, sessionID, func(ctx context.Context, s *editor.Session) error {
		if err := s.SetContent(ctx, nodeID, text); err != nil {
			return err
		}
		view = s.Current().View()
		m.publish(ctx, sessionID, domain.EventContentChanged, nodeID, &view)
		return nil
	})
	return view, err
}

// Reset discards the session's tree.
func (m *Manager) Reset(ctx context.Context, sessionID string) (domain.NodeView, error) {
	var view domain.NodeView
	err := m.WithSession(ctx, sessionID, func(ctx context.Context, s *editor.Session) error {
		s.Reset(ctx)
		view = s.Current().View()
		m.publish(ctx, sessionID, domain.EventReset, view.ID, &view)
		return nil
	})
	return view, err
}

// Export serializes the session's tree.
func (m *Manager) Export(ctx context.Context, sessionID string) (string, error) {
	var out string
	err := m.WithSession(ctx, sessionID, func(ctx context.Context, s *editor.Session) error {
		out = s.ExportMarkup(ctx)
		return nil
	})
	return out, err
}

// Subscribe listens for layout events of a session.
func (m *Manager) Subscribe(ctx context.Context, sessionID string) (<-chan string, func(), error) {
	if m.bus == nil {
		return nil, nil, ErrNoEventBus
	}
	return m.bus.Subscribe(ctx, sessionID)
}

// publish is best effort; a lost event never fails the mutation.
func (m *Manager) publish(ctx context.Context, sessionID string, t domain.EventType, nodeID domain.NodeID, view *domain.NodeView) {
	if m.bus == nil {
		return
	}
	evt := domain.LayoutEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: t, SessionID: sessionID},
		NodeID:    nodeID,
		Layout:    view,
	}
	bytes, err := json.Marshal(evt)
	if err != nil {
		m.logger.Error("Failed to encode layout event", "session_id", sessionID, "err", err)
		return
	}
	if err := m.bus.Publish(ctx, sessionID, string(bytes)); err != nil {
		m.logger.Warn("Failed to publish layout event", "session_id", sessionID, "err", err)
	}
}
