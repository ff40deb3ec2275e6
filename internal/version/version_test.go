package version

import (
	"fmt"
	"strings"
	"testing"
)

func TestFormatSettingsSchema(t *testing.T) {
	tests := []struct {
		version  int
		expected string
	}{
		{1, "settings/1"},
		{2, "settings/2"},
		{10, "settings/10"},
	}
	for _, tt := range tests {
		got := FormatSettingsSchema(tt.version)
		if got != tt.expected {
			t.Errorf("FormatSettingsSchema(%d) = %q, want %q", tt.version, got, tt.expected)
		}
	}
}

func TestParseSettingsVersion(t *testing.T) {
	tests := []struct {
		schema    string
		expected  int
		expectErr bool
	}{
		{"settings/1", 1, false},
		{"settings/10", 10, false},
		{"board/1", 0, true},     // Wrong prefix
		{"settings/", 0, true},   // Missing version
		{"settings/x", 0, true},  // Invalid version
		{"settings/0", 0, true},  // Version must be >= 1
		{"settings/-1", 0, true}, // Negative version
		{"", 0, true},            // Empty
	}
	for _, tt := range tests {
		got, err := ParseSettingsVersion(tt.schema)
		if tt.expectErr {
			if err == nil {
				t.Errorf("ParseSettingsVersion(%q) expected error, got %d", tt.schema, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSettingsVersion(%q) unexpected error: %v", tt.schema, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseSettingsVersion(%q) = %d, want %d", tt.schema, got, tt.expected)
		}
	}
}

func TestMinKanboardVersionCompleteness(t *testing.T) {
	for v := 1; v <= CurrentSettingsVersion; v++ {
		key := fmt.Sprintf("settings/%d", v)
		if _, ok := MinKanboardVersion[key]; !ok {
			t.Errorf("MinKanboardVersion missing entry for %s", key)
		}
	}
}

func TestInvalidSettingsSchema_FutureVersion(t *testing.T) {
	err := InvalidSettingsSchema("/tmp/config.toml", "settings/99")
	if !strings.Contains(err.Error(), "a newer version") {
		t.Errorf("expected upgrade hint, got %q", err.Error())
	}

	err = InvalidSettingsSchema("/tmp/config.toml", "bogus")
	if !strings.Contains(err.Error(), "expected settings/1") {
		t.Errorf("expected plain mismatch message, got %q", err.Error())
	}
}
