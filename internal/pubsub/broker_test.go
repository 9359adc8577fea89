package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	t.Parallel()

	b := NewBroker[string]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	require.Equal(t, 1, b.SubscriberCount())

	b.Publish(CreatedEvent, "hello")

	select {
	case event := <-ch:
		require.Equal(t, CreatedEvent, event.Type)
		require.Equal(t, "hello", event.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBrokerUnsubscribeOnContextCancel(t *testing.T) {
	t.Parallel()

	b := NewBroker[int]()
	ctx, cancel := context.WithCancel(context.Background())

	ch := b.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok, "channel must close when the context ends")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}

	require.Eventually(t, func() bool {
		return b.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBrokerShutdown(t *testing.T) {
	t.Parallel()

	b := NewBroker[int]()
	ctx := context.Background()

	ch := b.Subscribe(ctx)
	b.Shutdown()

	_, ok := <-ch
	require.False(t, ok, "channels close on shutdown")
	require.Equal(t, 0, b.SubscriberCount())

	// Publishing and subscribing after shutdown are no-ops.
	b.Publish(CreatedEvent, 1)
	late := b.Subscribe(ctx)
	_, ok = <-late
	require.False(t, ok)
}

func TestBrokerSlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	b := NewBroker[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Never read from the subscription; the publisher must not stall.
	_ = b.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range bufferSize * 2 {
			b.Publish(UpdatedEvent, i)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

func TestBrokerFanOut(t *testing.T) {
	t.Parallel()

	b := NewBroker[string]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := b.Subscribe(ctx)
	second := b.Subscribe(ctx)

	b.Publish(DeletedEvent, "gone")

	for _, ch := range []<-chan Event[string]{first, second} {
		select {
		case event := <-ch:
			require.Equal(t, "gone", event.Payload)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for fan-out")
		}
	}
}
