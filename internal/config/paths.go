package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigFileName    = "config.toml"
	GlobalConfigDir   = ".config/kanboard"
	ConfigPathEnvVar  = "KANBOARD_CONFIG"
	ServerURLEnvVar   = "KANBOARD_URL"
	DebugEnvVar       = "KANBOARD_DEBUG"
	DefaultServerHost = "localhost"
)

// SettingsPath returns the settings file location.
// $KANBOARD_CONFIG wins over ~/.config/kanboard/config.toml.
// Returns "" if neither can be determined.
func SettingsPath() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	dir := GlobalConfigDirPath()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// GlobalConfigDirPath returns the directory for global config.
func GlobalConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir)
}
