package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSettingsPath_EnvOverride(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/tmp/custom/kanboard.toml")

	if got := SettingsPath(); got != "/tmp/custom/kanboard.toml" {
		t.Errorf("SettingsPath() = %q, want env override", got)
	}
}

func TestSettingsPath_Default(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HOME", "/home/tester")

	got := SettingsPath()
	want := filepath.Join("/home/tester", ".config", "kanboard", "config.toml")
	if got != want {
		t.Errorf("SettingsPath() = %q, want %q", got, want)
	}
	if !strings.HasSuffix(got, ConfigFileName) {
		t.Errorf("expected %q suffix", ConfigFileName)
	}
}
