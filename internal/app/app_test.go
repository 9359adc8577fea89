package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
)

func TestAppLifecycle(t *testing.T) {
	t.Setenv("DEVOPS_DASH_GLOBAL_CONFIG", filepath.Join(t.TempDir(), "devops-dash.json"))
	t.Setenv("DEVOPS_DASH_DATA_CONFIG", filepath.Join(t.TempDir(), "devops-dash.json"))

	workingDir := t.TempDir()
	cfg, err := config.Load(workingDir, "", false)
	require.NoError(t, err)

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.Same(t, cfg, app.Config())
	require.Equal(t, feedSeedCount, app.Feed.Len(), "feed starts seeded")

	// The application's own log is tailed even with nothing configured.
	require.Eventually(t, func() bool {
		info, ok := GetSourceState(selfSourceName)
		return ok && (info.State == SourceStarting || info.State == SourceTailing)
	}, 5*time.Second, 10*time.Millisecond)

	app.Shutdown()
}
