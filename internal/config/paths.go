package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/home"
)

// GlobalConfig returns the path to the user's main config file.
func GlobalConfig() string {
	if v := os.Getenv("DEVOPS_DASH_GLOBAL_CONFIG"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home.Dir(), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home.Dir(), ".config")
	}
	return filepath.Join(xdgConfigHome, appName, fmt.Sprintf("%s.json", appName))
}

// ProjectConfigPath returns the project-local config file under workingDir.
func ProjectConfigPath(workingDir string) string {
	return filepath.Join(workingDir, fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path to the managed config file the
// application writes to itself.
func GlobalConfigData() string {
	if v := os.Getenv("DEVOPS_DASH_DATA_CONFIG"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home.Dir(), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	xdgDataHome := os.Getenv("XDG_DATA_HOME")
	if xdgDataHome == "" {
		xdgDataHome = filepath.Join(home.Dir(), ".local", "share")
	}
	return filepath.Join(xdgDataHome, appName, fmt.Sprintf("%s.json", appName))
}
