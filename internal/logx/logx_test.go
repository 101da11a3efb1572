package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"", "info"},
		{"debug", "debug"},
		{"WARN", "warn"},
		{"bogus", "info"},
	}
	for _, tt := range tests {
		t.Setenv(LevelEnv, tt.env)
		if got := levelFromEnv().String(); got != tt.want {
			t.Errorf("%s=%q: level %s, want %s", LevelEnv, tt.env, got, tt.want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Setenv(LevelEnv, "warn")
	var buf bytes.Buffer
	log := New(&buf)
	log.Info().Msg("hidden")
	log.Warn().Str("fen", "8/8/8/8/8/8/8/8").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "fen=") {
		t.Errorf("warn message missing from output: %q", out)
	}
}
