package editor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/markup"
)

// Session holds the current layout tree of one editor.
type Session struct {
	id         string
	root       *domain.Node
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	assertions bool
	maxContent int
}

// Option configures a Session.
type Option func(*Session)

// WithID tags emitted events with a session identifier.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithLogger sets a structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithAssertions verifies the whole tree after every mutation and panics on
// a violated invariant. Meant for development and tests.
func WithAssertions(enabled bool) Option {
	return func(s *Session) {
		s.assertions = enabled
	}
}

// WithMaxContentSize caps the byte length of leaf text. Non-positive values
// keep DefaultMaxContentSize.
func WithMaxContentSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxContent = n
		}
	}
}

// New starts a session whose root is a single empty leaf.
func New(opts ...Option) *Session {
	s := &Session{
		root:       domain.NewLeaf(),
		logger:     logging.NewNop(),
		maxContent: DefaultMaxContentSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier given by WithID.
func (s *Session) ID() string { return s.id }

// Current returns the current root.
func (s *Session) Current() *domain.Node { return s.root }

// Find looks a node up by ID in the current tree.
func (s *Session) Find(id domain.NodeID) (*domain.Node, bool) {
	return s.root.Find(id)
}

// ParentOf resolves the owning container of a node.
func (s *Session) ParentOf(id domain.NodeID) (*domain.Node, bool) {
	n, ok := s.root.Find(id)
	if !ok || n.Parent() == "" {
		return nil, false
	}
	return s.root.Find(n.Parent())
}

// Reset discards the tree and installs a new empty leaf as root.
func (s *Session) Reset(ctx context.Context) {
	s.root = domain.NewLeaf()
	s.logger.Debug("Layout reset", "session_id", s.id, "root_id", s.root.ID())

	if s.hooks.OnReset != nil {
		s.hooks.OnReset(ctx, &domain.ResetEvent{
			EventBase: s.event(domain.EventReset),
			RootID:    s.root.ID(),
		})
	}
}

// CanAccept is the drag-over check. Unknown nodes and modules never accept.
func (s *Session) CanAccept(target domain.NodeID, moduleID string) bool {
	m, ok := domain.LookupModule(moduleID)
	if !ok {
		return false
	}
	node, _ := s.root.Find(target)
	return domain.CanAccept(node, m)
}

// RequestDrop applies a module to the target node if the drop policy accepts
// it at this moment. It is the only structural mutation entry point.
func (s *Session) RequestDrop(ctx context.Context, target domain.NodeID, moduleID string) error {
	m, ok := domain.LookupModule(moduleID)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownModule, moduleID)
	}
	node, ok := s.root.Find(target)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, target)
	}

	if !domain.CanAccept(node, m) {
		reason := "target is not an empty cell"
		s.logger.Debug("Drop rejected", "session_id", s.id, "node_id", target, "module", moduleID)
		if s.hooks.OnDropRejected != nil {
			s.hooks.OnDropRejected(ctx, &domain.RejectEvent{
				EventBase: s.event(domain.EventDropRejected),
				NodeID:    target,
				ModuleID:  moduleID,
				Reason:    reason,
			})
		}
		return fmt.Errorf("%w: %s", domain.ErrRejectedDrop, reason)
	}

	if err := node.Split(m); err != nil {
		return err
	}
	s.assert()

	s.logger.Debug("Module dropped", "session_id", s.id, "node_id", target, "module", moduleID)
	if s.hooks.OnSplit != nil {
		s.hooks.OnSplit(ctx, &domain.SplitEvent{
			EventBase: s.event(domain.EventSplit),
			NodeID:    target,
			Module:    m,
			Size:      s.root.Size(),
		})
	}
	return nil
}

// SetContent edits the text of a leaf. Text is sanitized first (see
// SanitizeContent).
func (s *Session) SetContent(ctx context.Context, target domain.NodeID, text string) error {
	node, ok := s.root.Find(target)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, target)
	}
	if !node.IsLeaf() {
		return fmt.Errorf("%w: container %s has no content", domain.ErrInvalidState, target)
	}
	clean, err := SanitizeContent(text, s.maxContent)
	if err != nil {
		s.logger.Warn("Content rejected", "session_id", s.id, "node_id", target, "size", len(text), "err", err)
		return err
	}
	if err := node.SetContent(clean); err != nil {
		return err
	}
	s.assert()

	if s.hooks.OnContentChanged != nil {
		s.hooks.OnContentChanged(ctx, &domain.ContentEvent{
			EventBase: s.event(domain.EventContentChanged),
			NodeID:    target,
		})
	}
	return nil
}

// ExportMarkup serializes the current tree.
func (s *Session) ExportMarkup(ctx context.Context) string {
	out := markup.Render(s.root)
	if s.hooks.OnExport != nil {
		s.hooks.OnExport(ctx, &domain.ExportEvent{
			EventBase: s.event(domain.EventExport),
			Bytes:     len(out),
		})
	}
	return out
}

func (s *Session) assert() {
	if !s.assertions {
		return
	}
	if err := domain.Verify(s.root); err != nil {
		panic(err)
	}
}

func (s *Session) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		SessionID: s.id,
	}
}
