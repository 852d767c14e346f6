package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tessera/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every event at Info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSplit: func(ctx context.Context, e *domain.SplitEvent) {
			logger.InfoContext(ctx, "split", "session_id", e.SessionID, "node_id", e.NodeID, "module", e.Module.ID, "size", e.Size)
		},
		OnDropRejected: func(ctx context.Context, e *domain.RejectEvent) {
			logger.InfoContext(ctx, "drop_rejected", "session_id", e.SessionID, "node_id", e.NodeID, "module", e.ModuleID, "reason", e.Reason)
		},
		OnReset: func(ctx context.Context, e *domain.ResetEvent) {
			logger.InfoContext(ctx, "reset", "session_id", e.SessionID, "root_id", e.RootID)
		},
		OnContentChanged: func(ctx context.Context, e *domain.ContentEvent) {
			logger.InfoContext(ctx, "content_changed", "session_id", e.SessionID, "node_id", e.NodeID)
		},
		OnExport: func(ctx context.Context, e *domain.ExportEvent) {
			logger.InfoContext(ctx, "export", "session_id", e.SessionID, "bytes", e.Bytes)
		},
	}
}

// Chain merges hook sets; each callback runs in the given order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSplit: func(ctx context.Context, e *domain.SplitEvent) {
			for _, h := range sets {
				if h.OnSplit != nil {
					h.OnSplit(ctx, e)
				}
			}
		},
		OnDropRejected: func(ctx context.Context, e *domain.RejectEvent) {
			for _, h := range sets {
				if h.OnDropRejected != nil {
					h.OnDropRejected(ctx, e)
				}
			}
		},
		OnReset: func(ctx context.Context, e *domain.ResetEvent) {
			for _, h := range sets {
				if h.OnReset != nil {
					h.OnReset(ctx, e)
				}
			}
		},
		OnContentChanged: func(ctx context.Context, e *domain.ContentEvent) {
			for _, h := range sets {
				if h.OnContentChanged != nil {
					h.OnContentChanged(ctx, e)
				}
			}
		},
		OnExport: func(ctx context.Context, e *domain.ExportEvent) {
			for _, h := range sets {
				if h.OnExport != nil {
					h.OnExport(ctx, e)
				}
			}
		},
	}
}
