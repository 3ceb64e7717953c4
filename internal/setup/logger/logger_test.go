package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewWithWriter(&bytes.Buffer{}, tt.level)
			if logger.GetLevel() != tt.want {
				t.Errorf("level: %s, want %s", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewWithWriter_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Debug().Msg("hidden")
	logger.Info().Str("event_id", "evt-1").Msg("visible")

	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Error("debug line should be filtered at info level")
	}
	if !bytes.Contains([]byte(out), []byte(`"event_id":"evt-1"`)) {
		t.Errorf("expected structured field, got %s", out)
	}
}
