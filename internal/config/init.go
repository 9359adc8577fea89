package config

const (
	InitFlagFilename   = "init"
	ErrConfigNotLoaded = "config not loaded"
)

// Global config manager instance shared by the process.
var defaultManager = NewConfigManager()

// Init initializes the configuration using the manager
func Init(workingDir, dataDir string, debug bool) (*Config, error) {
	return defaultManager.InitConfig(workingDir, dataDir, debug)
}

// Get returns the current configuration using the manager
func Get() *Config {
	return defaultManager.GetConfig()
}

func ProjectNeedsInitialization() (bool, error) {
	return defaultManager.ProjectNeedsInitialization()
}

func MarkProjectInitialized() error {
	return defaultManager.MarkProjectInitialized()
}

func HasInitialDataConfig() bool {
	return defaultManager.HasInitialDataConfig()
}
