package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

// ConfigManager manages configuration instances without using global state
type ConfigManager struct {
	config atomic.Pointer[Config]
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{}
}

// SetConfig sets the configuration atomically
func (cm *ConfigManager) SetConfig(cfg *Config) {
	cm.config.Store(cfg)
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config.Load()
}

// InitConfig initializes and sets the configuration
func (cm *ConfigManager) InitConfig(workingDir, dataDir string, debug bool) (*Config, error) {
	cfg, err := Load(workingDir, dataDir, debug)
	if err != nil {
		return nil, err
	}
	cm.SetConfig(cfg)
	return cfg, nil
}

// ProjectNeedsInitialization checks if the project needs initialization
func (cm *ConfigManager) ProjectNeedsInitialization() (bool, error) {
	cfg := cm.GetConfig()
	if cfg == nil {
		return false, errors.New(ErrConfigNotLoaded)
	}

	flagFilePath := filepath.Join(cfg.Options.DataDirectory, InitFlagFilename)

	_, err := os.Stat(flagFilePath)
	if err == nil {
		return false, nil
	}

	if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check init flag file: %w", err)
	}

	// A project with sources already configured needs no onboarding.
	if cfg.IsConfigured() {
		return false, nil
	}

	return true, nil
}

// MarkProjectInitialized marks the project as initialized
func (cm *ConfigManager) MarkProjectInitialized() error {
	cfg := cm.GetConfig()
	if cfg == nil {
		return errors.New(ErrConfigNotLoaded)
	}
	flagFilePath := filepath.Join(cfg.Options.DataDirectory, InitFlagFilename)

	file, err := os.Create(flagFilePath)
	if err != nil {
		return fmt.Errorf("failed to create init flag file: %w", err)
	}
	defer file.Close()

	return nil
}

// HasInitialDataConfig checks if there's initial data configuration
func (cm *ConfigManager) HasInitialDataConfig() bool {
	cfg := cm.GetConfig()
	if cfg == nil {
		return false
	}

	cfgPath := GlobalConfigData()
	if _, err := os.Stat(cfgPath); err != nil {
		return false
	}
	return cfg.IsConfigured()
}

// Reset clears the configuration (useful for testing)
func (cm *ConfigManager) Reset() {
	cm.config.Store(nil)
}
