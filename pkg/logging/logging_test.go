package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			if got := levelFromEnv(); got != tt.want {
				t.Errorf("levelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("Hidden")
	logger.Warn("Shown", "email", "ana@x.com")

	out := buf.String()
	if strings.Contains(out, "Hidden") {
		t.Errorf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "Shown") || !strings.Contains(out, "ana@x.com") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestSetupJSONFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	prev := slog.Default()
	defer slog.SetDefault(prev)

	logger := SetupWithLevel(slog.LevelInfo)
	if _, ok := logger.Handler().(*slog.JSONHandler); !ok {
		t.Errorf("expected a JSON handler, got %T", logger.Handler())
	}
}
