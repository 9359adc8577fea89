package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/vscroll"
)

// isolateGlobalConfigs points the global config paths into an empty temp dir
// so tests never read the developer's real configuration.
func isolateGlobalConfigs(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DEVOPS_DASH_GLOBAL_CONFIG", filepath.Join(dir, "global.json"))
	t.Setenv("DEVOPS_DASH_DATA_CONFIG", filepath.Join(dir, "data.json"))
}

func TestLoadDefaults(t *testing.T) {
	isolateGlobalConfigs(t)

	cwd := t.TempDir()
	cfg, err := Load(cwd, "", false)
	require.NoError(t, err)

	require.Equal(t, cwd, cfg.WorkingDir())
	require.Equal(t, filepath.Join(cwd, defaultDataDirectory), cfg.Options.DataDirectory)
	require.NotNil(t, cfg.Options.TUI)
	require.NotNil(t, cfg.Sources)
	require.False(t, cfg.IsConfigured())
}

func TestLoadProjectConfig(t *testing.T) {
	isolateGlobalConfigs(t)

	cwd := t.TempDir()
	writeConfigFile(t, filepath.Join(cwd, "devops-dash.json"), `{
		"sources": {
			"api": {"type": "file", "path": "/var/log/api/*.log"}
		},
		"options": {"debug": true}
	}`)

	cfg, err := Load(cwd, "", false)
	require.NoError(t, err)

	require.True(t, cfg.IsConfigured())
	require.True(t, cfg.Options.Debug)
	src, ok := cfg.Sources["api"]
	require.True(t, ok)
	require.Equal(t, SourceTypeFile, src.Type)
	require.Equal(t, "/var/log/api/*.log", src.Path)
}

func TestLoadMergesMostSpecificLast(t *testing.T) {
	readers := []io.Reader{
		strings.NewReader(`{"options":{"debug":false},"sources":{"api":{"path":"/global.log"}}}`),
		strings.NewReader(`{"options":{"debug":true},"sources":{"api":{"path":"/project.log"},"db":{"path":"/db.log"}}}`),
	}

	cfg, err := loadFromReaders(readers)
	require.NoError(t, err)

	require.True(t, cfg.Options.Debug)
	require.Equal(t, "/project.log", cfg.Sources["api"].Path)
	require.Equal(t, "/db.log", cfg.Sources["db"].Path)
}

func TestLoadDataDirOverride(t *testing.T) {
	isolateGlobalConfigs(t)

	cwd := t.TempDir()
	custom := filepath.Join(t.TempDir(), "custom-data")

	cfg, err := Load(cwd, custom, false)
	require.NoError(t, err)
	require.Equal(t, custom, cfg.Options.DataDirectory)
}

func TestSourcesSorted(t *testing.T) {
	t.Parallel()

	s := Sources{
		"zeta":  {Path: "/z.log"},
		"alpha": {Path: "/a.log"},
		"mid":   {Path: "/m.log", Disabled: true},
	}

	sorted := s.Sorted()
	require.Equal(t, []string{"alpha", "mid", "zeta"}, []string{
		sorted[0].Name, sorted[1].Name, sorted[2].Name,
	})
}

func TestEnabledSourcesSkipsDisabled(t *testing.T) {
	t.Parallel()

	cfg := &Config{Sources: Sources{
		"on":  {Path: "/on.log"},
		"off": {Path: "/off.log", Disabled: true},
	}}

	enabled := cfg.EnabledSources()
	require.Len(t, enabled, 1)
	require.Equal(t, "on", enabled[0].Name)
}

func TestSourceConfigResolvedPath(t *testing.T) {
	t.Setenv("DASH_TEST_LOG_DIR", "/srv/logs")

	s := SourceConfig{Path: "$DASH_TEST_LOG_DIR/**/*.log"}
	require.Equal(t, "/srv/logs/**/*.log", s.ResolvedPath())
}

func TestSourceConfigEffectiveMaxLines(t *testing.T) {
	t.Parallel()

	require.Equal(t, defaultSourceMaxLines, SourceConfig{}.EffectiveMaxLines())
	require.Equal(t, 50, SourceConfig{MaxLines: 50}.EffectiveMaxLines())
}

func TestVirtualizationEngineOptions(t *testing.T) {
	t.Parallel()

	t.Run("empty tuning keeps engine defaults", func(t *testing.T) {
		var v Virtualization
		require.Empty(t, v.EngineOptions())
		require.Empty(t, v.LoaderOptions())
	})

	t.Run("configured tuning is applied", func(t *testing.T) {
		estimate := 3.0
		overscan := 5
		v := Virtualization{
			EstimatedItemHeight: &estimate,
			Overscan:            &overscan,
		}

		e, err := vscroll.New(10, v.EngineOptions()...)
		require.NoError(t, err)
		require.Equal(t, 30.0, e.TotalHeight())
	})

	t.Run("batch size reaches the loader", func(t *testing.T) {
		size := 7
		v := Virtualization{BatchSize: &size}

		l, err := vscroll.NewBatchLoader(20, v.LoaderOptions()...)
		require.NoError(t, err)
		require.Equal(t, 7, l.LoadNextBatch())
	})
}

func TestSetConfigField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	cfg := &Config{dataConfigDir: path}

	require.NoError(t, cfg.SetConfigField("options.tui.compact_mode", true))
	require.NoError(t, cfg.SetConfigField("sources.api.path", "/var/log/api.log"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(data, &onDisk))
	options := onDisk["options"].(map[string]any)
	tui := options["tui"].(map[string]any)
	require.Equal(t, true, tui["compact_mode"])
}

func TestSetSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	cfg := &Config{dataConfigDir: path}

	require.NoError(t, cfg.SetSource("api", SourceConfig{
		Type: SourceTypeFile,
		Path: "/var/log/api.log",
	}))

	require.Equal(t, "/var/log/api.log", cfg.Sources["api"].Path)

	// The persisted file round-trips through the loader.
	fd, err := os.Open(path)
	require.NoError(t, err)
	defer fd.Close()

	loaded, err := loadFromReaders([]io.Reader{fd})
	require.NoError(t, err)
	require.Equal(t, "/var/log/api.log", loaded.Sources["api"].Path)
}

func TestConfigManager(t *testing.T) {
	isolateGlobalConfigs(t)

	cm := NewConfigManager()
	require.Nil(t, cm.GetConfig())

	cwd := t.TempDir()
	cfg, err := cm.InitConfig(cwd, "", false)
	require.NoError(t, err)
	require.Same(t, cfg, cm.GetConfig())

	cm.Reset()
	require.Nil(t, cm.GetConfig())
}

func TestProjectNeedsInitialization(t *testing.T) {
	isolateGlobalConfigs(t)

	cwd := t.TempDir()
	cm := NewConfigManager()
	cfg, err := cm.InitConfig(cwd, "", false)
	require.NoError(t, err)

	needs, err := cm.ProjectNeedsInitialization()
	require.NoError(t, err)
	require.True(t, needs, "no sources and no init flag")

	require.NoError(t, os.MkdirAll(cfg.Options.DataDirectory, 0o700))
	require.NoError(t, cm.MarkProjectInitialized())

	needs, err = cm.ProjectNeedsInitialization()
	require.NoError(t, err)
	require.False(t, needs, "the init flag suppresses onboarding")
}

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.Compact(&buf, []byte(content)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}
