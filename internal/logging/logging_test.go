package logging

import (
	"bytes"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/amterp/kanboard/internal/config"
)

func TestResolveLevel(t *testing.T) {
	t.Setenv(config.DebugEnvVar, "")

	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ResolveLevel(tt.input); got != tt.want {
			t.Errorf("ResolveLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestResolveLevel_DebugEnvWins(t *testing.T) {
	t.Setenv(config.DebugEnvVar, "true")

	if got := ResolveLevel("error"); got != log.DebugLevel {
		t.Errorf("got %v, want debug", got)
	}
}

func TestNew_WritesToOutput(t *testing.T) {
	t.Setenv(config.DebugEnvVar, "")
	var buf bytes.Buffer

	logger := New("info", &buf)
	logger.Debug("hidden")
	logger.WithField("card", "1").Info("moved")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
	if !strings.Contains(out, "moved") || !strings.Contains(out, "card=1") {
		t.Errorf("unexpected output: %q", out)
	}
}
