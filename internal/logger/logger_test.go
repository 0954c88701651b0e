package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"chatty", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug").WithComponent("release-client")
	l.Warn().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, "release-client") {
		t.Errorf("output %q missing component", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("output %q missing message", out)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at warn level: %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	// Must not panic.
	Nop().WithComponent("x").Error().Msg("discarded")
}
