package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestIsGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"/var/log/app.log", false},
		{"/var/log/*.log", true},
		{"/var/log/**/app.log", true},
		{"/var/log/app?.log", true},
		{"/var/log/app[12].log", true},
		{"relative/path.log", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, isGlob(tt.path), "path %q", tt.path)
	}
}

func TestExpandGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	older := filepath.Join(dir, "svc", "old.log")
	newer := filepath.Join(dir, "svc", "new.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(older), 0o755))
	require.NoError(t, os.WriteFile(older, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("x"), 0o644))

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	got, err := expandGlob(filepath.Join(dir, "**", "*.log"))
	require.NoError(t, err)
	require.Equal(t, newer, got)

	got, err = expandGlob(filepath.Join(dir, "**", "*.journal"))
	require.NoError(t, err)
	require.Empty(t, got, "no match resolves to empty path")
}

func TestTailSourcePublishesLines(t *testing.T) {
	app := &App{sourcesEG: &errgroup.Group{}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := SubscribeLogLines(ctx)

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\r\n"), 0o644))

	app.startTail(ctx, "tail-test", path)

	var got []LogLine
	timeout := time.After(5 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-ch:
			got = append(got, ev.Payload)
		case <-timeout:
			t.Fatalf("timed out waiting for lines, got %d", len(got))
		}
	}

	require.Equal(t, "first", got[0].Text)
	require.Equal(t, 1, got[0].Number)
	require.Equal(t, "second", got[1].Text, "carriage return is stripped")
	require.Equal(t, 2, got[1].Number)
	require.Equal(t, "tail-test", got[0].Source)

	cancel()
	require.NoError(t, app.sourcesEG.Wait())

	info, ok := GetSourceState("tail-test")
	require.True(t, ok)
	require.Equal(t, SourceStopped, info.State)
	require.Equal(t, 2, info.Lines)
	require.Equal(t, path, info.Path)
}

func TestTailSourceMissingFileWaitsForCreation(t *testing.T) {
	app := &App{sourcesEG: &errgroup.Group{}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := SubscribeLogLines(ctx)

	path := filepath.Join(t.TempDir(), "late.log")
	app.startTail(ctx, "late-test", path)

	// The file does not exist yet; the tail must pick it up on creation.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))

	select {
	case ev := <-ch:
		require.Equal(t, "hello", ev.Payload.Text)
		require.Equal(t, "late-test", ev.Payload.Source)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for line from late file")
	}

	cancel()
	require.NoError(t, app.sourcesEG.Wait())
}
