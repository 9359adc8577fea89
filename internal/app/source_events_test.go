package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUpdateSourceStatePublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := SubscribeSourceEvents(ctx)

	before := SourcesVersion()
	updateSourceState("registry-test", SourceTailing, nil, "/var/log/app.log", 0)
	require.Greater(t, SourcesVersion(), before)

	select {
	case ev := <-ch:
		require.Equal(t, SourceEventStateChanged, ev.Payload.Type)
		require.Equal(t, "registry-test", ev.Payload.Name)
		require.Equal(t, SourceTailing, ev.Payload.State)
		require.Equal(t, "/var/log/app.log", ev.Payload.Path)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for state change event")
	}

	info, ok := GetSourceState("registry-test")
	require.True(t, ok)
	require.Equal(t, SourceTailing, info.State)
	require.Equal(t, "/var/log/app.log", info.Path)
	require.False(t, info.StartedAt.IsZero(), "tailing sets the start time")
}

func TestUpdateSourceStateKeepsPathWhenBlank(t *testing.T) {
	updateSourceState("keep-path-test", SourceTailing, nil, "/tmp/a.log", 0)
	updateSourceState("keep-path-test", SourceError, errors.New("boom"), "", 3)

	info, ok := GetSourceState("keep-path-test")
	require.True(t, ok)
	require.Equal(t, SourceError, info.State)
	require.Equal(t, "/tmp/a.log", info.Path)
	require.Equal(t, 3, info.Lines)
	require.EqualError(t, info.Error, "boom")
}

func TestUpdateSourceLinesStride(t *testing.T) {
	updateSourceState("stride-test", SourceTailing, nil, "/tmp/s.log", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := SubscribeSourceEvents(ctx)

	for i := 1; i <= lineEventStride-1; i++ {
		updateSourceLines("stride-test", i)
	}
	select {
	case ev := <-ch:
		t.Fatalf("no event expected below the stride, got %+v", ev.Payload)
	case <-time.After(50 * time.Millisecond):
	}

	updateSourceLines("stride-test", lineEventStride)
	select {
	case ev := <-ch:
		require.Equal(t, SourceEventLinesChanged, ev.Payload.Type)
		require.Equal(t, lineEventStride, ev.Payload.Lines)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for lines event at the stride")
	}

	info, ok := GetSourceState("stride-test")
	require.True(t, ok)
	require.Equal(t, lineEventStride, info.Lines)
}

func TestUpdateSourceLinesUnknownSource(t *testing.T) {
	before := SourcesVersion()
	updateSourceLines("never-registered", 10)
	require.Equal(t, before, SourcesVersion(), "unknown sources are not created")
}

func TestGetSourceStatesSnapshot(t *testing.T) {
	updateSourceState("snapshot-test", SourceStarting, nil, "/tmp/x.log", 0)

	states := GetSourceStates()
	require.Contains(t, states, "snapshot-test")

	// Mutating the snapshot must not touch the registry.
	entry := states["snapshot-test"]
	entry.Lines = 999
	states["snapshot-test"] = entry

	info, ok := GetSourceState("snapshot-test")
	require.True(t, ok)
	require.Zero(t, info.Lines)
}
