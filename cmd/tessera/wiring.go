package main

import (
	"fmt"

	"github.com/aretw0/tessera/internal/config"
	"github.com/aretw0/tessera/pkg/adapters/memory"
	"github.com/aretw0/tessera/pkg/adapters/redis"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/editor"
	"github.com/aretw0/tessera/pkg/observability"
	"github.com/aretw0/tessera/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// newManager wires a session manager from the resolved config. Metrics are
// registered on reg when it is not nil. The returned func releases the bus.
func newManager(reg prometheus.Registerer) (*session.Manager, func(), error) {
	hooks := observability.LogHooks(logger)
	if reg != nil {
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return nil, nil, err
		}
		hooks = observability.Chain(hooks, metrics.Hooks())
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithEditorOptions(
			editor.WithHooks(hooks),
			editor.WithLogger(logger),
			editor.WithAssertions(cfg.Assertions),
			editor.WithMaxContentSize(cfg.MaxContentSize),
		),
	}

	cleanup := func() {}
	switch cfg.Events.Backend {
	case config.BackendRedis:
		bus := redis.New(cfg.Events.RedisAddr,
			redis.WithPrefix(cfg.Events.ChannelPrefix),
			redis.WithLogger(logger),
		)
		opts = append(opts, session.WithEventBus(bus))
		cleanup = func() {
			if err := bus.Close(); err != nil {
				logger.Warn("Failed to close redis bus", "err", err)
			}
		}
		logger.Info("Layout events via redis", "addr", cfg.Events.RedisAddr, "prefix", cfg.Events.ChannelPrefix)
	case config.BackendMemory:
		opts = append(opts, session.WithEventBus(memory.NewBus(logger)))
	default:
		return nil, nil, fmt.Errorf("unknown events backend %q", cfg.Events.Backend)
	}

	return session.NewManager(memory.NewRegistry(), opts...), cleanup, nil
}

// planHooks logs every step a plan applies.
func planHooks() domain.LifecycleHooks {
	return observability.LogHooks(logger)
}
