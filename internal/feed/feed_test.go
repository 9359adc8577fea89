package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
)

func TestServiceSeedDoesNotPublish(t *testing.T) {
	t.Parallel()

	s := NewService()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	s.Seed(Fixtures(10))
	require.Equal(t, 10, s.Len())

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event after seed: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestServiceAppendPublishes(t *testing.T) {
	t.Parallel()

	s := NewService()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	item := Item{ID: "a", Kind: KindDeploy, Service: "api", Env: "prod", Message: "deployed api v1.0.0"}
	s.Append(item)

	select {
	case ev := <-ch:
		require.Equal(t, pubsub.CreatedEvent, ev.Type)
		require.Equal(t, item, ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for created event")
	}

	require.Equal(t, 1, s.Len())
	got, ok := s.Get(0)
	require.True(t, ok)
	require.Equal(t, item, got)
}

func TestFixtures(t *testing.T) {
	t.Parallel()

	items := Fixtures(50)
	require.Len(t, items, 50)

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		require.NotEmpty(t, item.ID)
		require.False(t, seen[item.ID], "duplicate id at %d", i)
		seen[item.ID] = true

		require.Contains(t, kinds, item.Kind)
		require.Contains(t, serviceNames, item.Service)
		require.Contains(t, envs, item.Env)
		require.NotEmpty(t, item.Message)

		if i > 0 {
			require.False(t, item.CreatedAt.Before(items[i-1].CreatedAt), "timestamps must be non-decreasing")
		}
	}
}

func TestFixturesDeterministicContent(t *testing.T) {
	t.Parallel()

	a := Fixtures(20)
	b := Fixtures(20)
	for i := range a {
		require.Equal(t, a[i].Kind, b[i].Kind)
		require.Equal(t, a[i].Service, b[i].Service)
		require.Equal(t, a[i].Env, b[i].Env)
		require.Equal(t, a[i].Message, b[i].Message)
	}
}

func TestServiceStartEmits(t *testing.T) {
	t.Parallel()

	s := NewService()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	s.Start(ctx, 10*time.Millisecond)

	select {
	case ev := <-ch:
		require.Equal(t, pubsub.CreatedEvent, ev.Type)
		require.NotEmpty(t, ev.Payload.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for generated item")
	}
}
