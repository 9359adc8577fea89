package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/sjson"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/home"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/vscroll"
)

const (
	appName              = "devops-dash"
	defaultDataDirectory = ".devops-dash"

	defaultSourceMaxLines = 1000
)

// SourceType determines how a source's entries are produced.
type SourceType string

const (
	// SourceTypeFile tails log files matched by a path or glob.
	SourceTypeFile SourceType = "file"
	// SourceTypeFeed streams deployment and alert events.
	SourceTypeFeed SourceType = "feed"
)

// SourceConfig describes one monitored source shown on the dashboard.
type SourceConfig struct {
	Type SourceType `json:"type,omitempty" jsonschema:"description=How entries are produced for this source,enum=file,enum=feed,default=file"`
	// File path or doublestar glob, for file sources.
	Path string `json:"path,omitempty" jsonschema:"description=File path or doublestar glob to tail,example=/var/log/app/**/*.log,example=$HOME/logs/*.log"`
	// Marks the source as disabled.
	Disabled bool `json:"disabled,omitempty" jsonschema:"description=Whether this source is disabled,default=false"`
	// How many entries the source keeps in memory.
	MaxLines int `json:"max_lines,omitempty" jsonschema:"description=Maximum number of entries kept in memory for this source,default=1000,example=5000"`
}

// ResolvedPath expands environment variables and a leading ~ in the source
// path.
func (s SourceConfig) ResolvedPath() string {
	return home.Long(os.ExpandEnv(s.Path))
}

// EffectiveMaxLines returns the configured line cap or the default.
func (s SourceConfig) EffectiveMaxLines() int {
	if s.MaxLines > 0 {
		return s.MaxLines
	}
	return defaultSourceMaxLines
}

type Sources map[string]SourceConfig

type Source struct {
	Name   string       `json:"name"`
	Source SourceConfig `json:"source"`
}

func (s Sources) Sorted() []Source {
	sorted := make([]Source, 0, len(s))
	for k, v := range s {
		sorted = append(sorted, Source{
			Name:   k,
			Source: v,
		})
	}
	slices.SortFunc(sorted, func(a, b Source) int {
		return strings.Compare(a.Name, b.Name)
	})
	return sorted
}

// Virtualization tunes the list virtualization engine shared by the
// dashboard panels. Unset fields fall back to the engine defaults.
type Virtualization struct {
	// Every item is exactly this tall; offsets become closed-form.
	FixedItemHeight *float64 `json:"fixed_item_height,omitempty" jsonschema:"description=Fixed height for every item; enables fixed-height mode,example=1"`
	// Provisional height for unmeasured items in dynamic mode.
	EstimatedItemHeight *float64 `json:"estimated_item_height,omitempty" jsonschema:"description=Provisional height used for items that have not been measured yet,default=50,example=3"`
	// Extra items resolved on each side of the visible range.
	Overscan *int `json:"overscan,omitempty" jsonschema:"description=Extra items rendered on each side of the visible range,default=3,minimum=0,example=5"`
	// Fraction of the total height past which end-reached fires.
	EndReachedThreshold *float64 `json:"end_reached_threshold,omitempty" jsonschema:"description=Fraction of the total scroll height past which the end-reached signal fires,default=0.8,example=0.9"`
	// Items revealed per progressive batch.
	BatchSize *int `json:"batch_size,omitempty" jsonschema:"description=Number of items each progressive batch reveals,default=20,minimum=1,example=50"`
}

// EngineOptions translates the configured tuning into engine options,
// leaving unset fields to the engine defaults.
func (v Virtualization) EngineOptions() []vscroll.Option {
	var opts []vscroll.Option
	if v.FixedItemHeight != nil {
		opts = append(opts, vscroll.WithFixedItemHeight(*v.FixedItemHeight))
	}
	if v.EstimatedItemHeight != nil {
		opts = append(opts, vscroll.WithEstimatedItemHeight(*v.EstimatedItemHeight))
	}
	if v.Overscan != nil {
		opts = append(opts, vscroll.WithOverscan(*v.Overscan))
	}
	if v.EndReachedThreshold != nil {
		opts = append(opts, vscroll.WithEndReachedThreshold(*v.EndReachedThreshold))
	}
	return opts
}

// LoaderOptions translates the configured tuning into batch loader options.
func (v Virtualization) LoaderOptions() []vscroll.BatchOption {
	var opts []vscroll.BatchOption
	if v.BatchSize != nil {
		opts = append(opts, vscroll.WithBatchSize(*v.BatchSize))
	}
	return opts
}

type TUIOptions struct {
	CompactMode bool `json:"compact_mode,omitempty" jsonschema:"description=Enable compact mode for the TUI interface,default=false"`
	// Here we can add themes later or any TUI related options
}

type Options struct {
	TUI            *TUIOptions `json:"tui,omitempty" jsonschema:"description=Terminal user interface options"`
	Debug          bool        `json:"debug,omitempty" jsonschema:"description=Enable debug logging,default=false"`
	DataDirectory  string      `json:"data_directory,omitempty" jsonschema:"description=Directory for storing application data (relative to working directory),default=.devops-dash,example=.devops-dash"` // Relative to the cwd
	DisableMetrics bool        `json:"disable_metrics,omitempty" jsonschema:"description=Disable sending metrics,default=false"`
}

// Config holds the configuration for devops-dash.
type Config struct {
	Schema string `json:"$schema,omitempty"`

	// Virtualization tuning shared by the dashboard panels.
	Virtualization Virtualization `json:"virtualization,omitzero" jsonschema:"description=List virtualization engine tuning"`

	// The monitored sources, keyed by display name.
	Sources Sources `json:"sources,omitempty" jsonschema:"description=Monitored source configurations,example={\"api\":{\"type\":\"file\",\"path\":\"/var/log/api/*.log\"}}"`

	Options *Options `json:"options,omitempty" jsonschema:"description=General application options"`

	// Internal
	workingDir    string `json:"-"`
	dataConfigDir string `json:"-"`
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// LogFilePath returns the rotating application log location under the data
// directory.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Options.DataDirectory, "logs", fmt.Sprintf("%s.log", appName))
}

// EnabledSources returns the sources that are not disabled, sorted by name.
func (c *Config) EnabledSources() []Source {
	var enabled []Source
	for _, s := range c.Sources.Sorted() {
		if !s.Source.Disabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// IsConfigured returns true if at least one source is configured.
func (c *Config) IsConfigured() bool {
	return len(c.EnabledSources()) > 0
}

// CompactMode reports whether the TUI renders in compact mode.
func (c *Config) CompactMode() bool {
	return c.Options != nil && c.Options.TUI != nil && c.Options.TUI.CompactMode
}

func (c *Config) SetCompactMode(enabled bool) error {
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	c.Options.TUI.CompactMode = enabled
	return c.SetConfigField("options.tui.compact_mode", enabled)
}

// SetConfigField persists a single field to the data-directory config file,
// leaving the rest of the file untouched.
func (c *Config) SetConfigField(key string, value any) error {
	// read the data
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.WriteFile(c.dataConfigDir, []byte(newValue), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetSource persists a source definition and updates the in-memory config.
func (c *Config) SetSource(name string, source SourceConfig) error {
	if err := c.SetConfigField(fmt.Sprintf("sources.%s", name), source); err != nil {
		return fmt.Errorf("failed to save source to config file: %w", err)
	}
	if c.Sources == nil {
		c.Sources = make(Sources)
	}
	c.Sources[name] = source
	return nil
}
