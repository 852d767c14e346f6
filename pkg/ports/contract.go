package ports

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionRegistryContract runs a suite of tests to verify that a SessionRegistry
// implementation adheres to the defined interface contract.
func RunSessionRegistryContract(t *testing.T, registry SessionRegistry) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		s := editor.New(editor.WithID(sessionID))
		require.NoError(t, registry.Put(ctx, sessionID, s))

		got, err := registry.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Same(t, s, got, "registry must hand back the live session")
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := registry.Get(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := sessionID + "-other"
		require.NoError(t, registry.Put(ctx, other, editor.New()))

		ids, err := registry.List(ctx)
		require.NoError(t, err)
		sort.Strings(ids)
		assert.Contains(t, ids, sessionID)
		assert.Contains(t, ids, other)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, registry.Delete(ctx, sessionID))
		_, err := registry.Get(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		assert.NoError(t, registry.Delete(ctx, sessionID), "deleting twice is not an error")
	})
}

// RunEventBusContract runs a suite of tests to verify that an EventBus
// implementation adheres to the defined interface contract.
func RunEventBusContract(t *testing.T, bus EventBus) {
	ctx := context.Background()
	sessionID := fmt.Sprintf("contract-bus-%d", time.Now().UnixNano())

	t.Run("Publish reaches subscriber", func(t *testing.T) {
		ch, cancel, err := bus.Subscribe(ctx, sessionID)
		require.NoError(t, err)
		defer cancel()

		require.NoError(t, bus.Publish(ctx, sessionID, `{"type":"split"}`))

		select {
		case msg := <-ch:
			assert.Equal(t, `{"type":"split"}`, msg)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for message")
		}
	})

	t.Run("Sessions are isolated", func(t *testing.T) {
		ch, cancel, err := bus.Subscribe(ctx, sessionID+"-a")
		require.NoError(t, err)
		defer cancel()

		require.NoError(t, bus.Publish(ctx, sessionID+"-b", "other"))
		require.NoError(t, bus.Publish(ctx, sessionID+"-a", "mine"))

		select {
		case msg := <-ch:
			assert.Equal(t, "mine", msg)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for message")
		}
	})

	t.Run("Cancel closes channel", func(t *testing.T) {
		ch, cancel, err := bus.Subscribe(ctx, sessionID+"-closed")
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-ch:
			assert.False(t, ok, "channel should be closed")
		case <-time.After(2 * time.Second):
			t.Fatal("channel not closed after cancel")
		}

		assert.NoError(t, bus.Publish(ctx, sessionID+"-closed", "late"))
	})
}
