package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/tessera/pkg/adapters/memory"
	"github.com/aretw0/tessera/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_Contract(t *testing.T) {
	ports.RunEventBusContract(t, memory.NewBus(nil))
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	bus := memory.NewBus(nil)

	ch, cancel, err := bus.Subscribe(ctx, "sess-1")
	require.NoError(t, err)
	defer cancel()

	for i := 0; i < 100; i++ {
		require.NoError(t, bus.Publish(ctx, "sess-1", fmt.Sprintf("msg-%d", i)))
	}

	assert.Equal(t, "msg-0", <-ch)
	assert.Len(t, ch, 15)
}

func TestBus_CancelReleasesSubscription(t *testing.T) {
	ctx := context.Background()
	bus := memory.NewBus(nil)

	_, cancel, err := bus.Subscribe(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, bus.Subscribers("sess-1"))

	cancel()
	cancel()
	assert.Equal(t, 0, bus.Subscribers("sess-1"))
}
