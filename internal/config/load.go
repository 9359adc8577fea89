package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/qjebbs/go-jsons"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/filepathext"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/fsext"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/log"
)

// Load reads every config file that applies to workingDir, merges them with
// the most specific file winning, and applies defaults. Logging is
// configured here so the rest of startup logs to the data directory.
func Load(workingDir, dataDir string, debug bool) (*Config, error) {
	configPaths := lookupConfigs(workingDir)
	cfg, err := loadFromPaths(configPaths)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults(workingDir, dataDir)
	cfg.Options.Debug = cfg.Options.Debug || debug

	log.Setup(cfg.LogFilePath(), cfg.Options.Debug)
	slog.Debug("configuration loaded",
		"paths", configPaths,
		"sources", len(cfg.Sources),
	)
	return cfg, nil
}

// lookupConfigs collects candidate config files, least specific first: the
// user's global config, the managed data config, then project files found
// walking up from the working directory.
func lookupConfigs(workingDir string) []string {
	paths := []string{
		GlobalConfig(),
		GlobalConfigData(),
	}

	names := []string{
		fmt.Sprintf("%s.json", appName),
		fmt.Sprintf(".%s.json", appName),
	}
	found, err := fsext.Lookup(workingDir, names...)
	if err != nil {
		slog.Warn("failed to look up project config files", "error", err)
		return paths
	}
	// Lookup returns nearest-first; the merge wants the nearest file last so
	// it wins.
	slices.Reverse(found)
	return append(paths, found...)
}

func loadFromPaths(configPaths []string) (*Config, error) {
	var readers []io.Reader
	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close() //nolint:errcheck
		readers = append(readers, fd)
	}
	return loadFromReaders(readers)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}
	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge config files: %w", err)
	}
	cfg := &Config{}
	if err := json.Unmarshal(merged, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) setDefaults(workingDir, dataDir string) {
	c.workingDir = workingDir
	c.dataConfigDir = GlobalConfigData()

	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	if dataDir != "" {
		c.Options.DataDirectory = dataDir
	} else if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = defaultDataDirectory
	}
	c.Options.DataDirectory = filepathext.SmartJoin(workingDir, c.Options.DataDirectory)
	if c.Sources == nil {
		c.Sources = make(Sources)
	}
}
