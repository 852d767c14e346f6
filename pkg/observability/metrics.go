package observability

import (
	"context"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the editor collectors.
type Metrics struct {
	Drops       *prometheus.CounterVec
	Splits      *prometheus.CounterVec
	Resets      prometheus.Counter
	Edits       prometheus.Counter
	Exports     prometheus.Counter
	ExportBytes prometheus.Histogram
	LayoutSize  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tessera_drops_total",
			Help: "Drop requests by outcome",
		}, []string{"result"}),
		Splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tessera_splits_total",
			Help: "Leaves split, by module",
		}, []string{"module"}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tessera_resets_total",
			Help: "Layouts discarded by reset",
		}),
		Edits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tessera_content_edits_total",
			Help: "Leaf content edits",
		}),
		Exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tessera_exports_total",
			Help: "Markup exports",
		}),
		ExportBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tessera_export_bytes",
			Help:    "Size of exported markup",
			Buckets: prometheus.ExponentialBuckets(128, 4, 8),
		}),
		LayoutSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tessera_layout_nodes",
			Help:    "Number of nodes in a layout after a split",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.Drops, m.Splits, m.Resets, m.Edits, m.Exports, m.ExportBytes, m.LayoutSize} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSplit: func(_ context.Context, e *domain.SplitEvent) {
			m.Drops.WithLabelValues("accepted").Inc()
			m.Splits.WithLabelValues(e.Module.ID).Inc()
			m.LayoutSize.Observe(float64(e.Size))
		},
		OnDropRejected: func(context.Context, *domain.RejectEvent) {
			m.Drops.WithLabelValues("rejected").Inc()
		},
		OnReset: func(context.Context, *domain.ResetEvent) {
			m.Resets.Inc()
		},
		OnContentChanged: func(context.Context, *domain.ContentEvent) {
			m.Edits.Inc()
		},
		OnExport: func(_ context.Context, e *domain.ExportEvent) {
			m.Exports.Inc()
			m.ExportBytes.Observe(float64(e.Bytes))
		},
	}
}
