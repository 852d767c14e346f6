package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSplit          EventType = "split"
	EventDropRejected   EventType = "drop_rejected"
	EventReset          EventType = "reset"
	EventContentChanged EventType = "content_changed"
	EventExport         EventType = "export"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// SplitEvent is emitted after a leaf accepted a module.
type SplitEvent struct {
	EventBase
	NodeID NodeID     `json:"node_id"`
	Module ModuleType `json:"module"`
	Size   int        `json:"size"` // Tree size after the split
}

// RejectEvent is emitted when the drop policy declines a drop.
type RejectEvent struct {
	EventBase
	NodeID   NodeID `json:"node_id"`
	ModuleID string `json:"module_id"`
	Reason   string `json:"reason"`
}

// ResetEvent is emitted when a session discards its tree.
type ResetEvent struct {
	EventBase
	RootID NodeID `json:"root_id"`
}

// ContentEvent is emitted after a leaf's text changed.
type ContentEvent struct {
	EventBase
	NodeID NodeID `json:"node_id"`
}

// ExportEvent is emitted after the tree was serialized.
type ExportEvent struct {
	EventBase
	Bytes int `json:"bytes"`
}

// LifecycleHooks defines callbacks for editor observability.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnSplit          func(context.Context, *SplitEvent)
	OnDropRejected   func(context.Context, *RejectEvent)
	OnReset          func(context.Context, *ResetEvent)
	OnContentChanged func(context.Context, *ContentEvent)
	OnExport         func(context.Context, *ExportEvent)
}

// LayoutEvent is the message broadcast to UI collaborators after a change.
// It carries the whole new tree so clients can re-render without diffing.
type LayoutEvent struct {
	EventBase
	NodeID NodeID    `json:"node_id,omitempty"`
	Layout *NodeView `json:"layout,omitempty"`
}
