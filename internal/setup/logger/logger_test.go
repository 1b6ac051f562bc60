package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
	}{
		{name: "debug", level: "debug", wantLevel: zerolog.DebugLevel},
		{name: "warn", level: "warn", wantLevel: zerolog.WarnLevel},
		{name: "empty falls back to info", level: "", wantLevel: zerolog.InfoLevel},
		{name: "unknown falls back to info", level: "loud", wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter(&buf, tt.level)
			if l.GetLevel() != tt.wantLevel {
				t.Errorf("level %s, want %s", l.GetLevel(), tt.wantLevel)
			}
		})
	}
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")
	l.Info().Str("signal", "a").Msg("signal resolved")

	out := buf.String()
	for _, want := range []string{`"signal":"a"`, `"message":"signal resolved"`, `"time":`, `"caller":`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %s", out, want)
		}
	}
}
