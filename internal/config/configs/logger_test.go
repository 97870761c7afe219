package configs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Logger{Level: in}.SlogLevel(), in)
	}
}

func TestLoggerNew_JSONWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := Logger{Level: "warn", Format: "JSON"}.New(&buf, slog.String("env", "staging"))

	logger.Info("dropped")
	logger.Warn("kept", slog.Int("attempt", 2))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "staging", rec["env"])
	assert.EqualValues(t, 2, rec["attempt"])
	assert.NotContains(t, rec, "source")
}

func TestLoggerNew_TextWithSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Logger{Format: "yaml", Source: true}.New(&buf)

	logger.Debug("dropped")
	logger.Info("started")

	out := buf.String()
	assert.Contains(t, out, "msg=started")
	assert.Contains(t, out, "source=")
	assert.NotContains(t, out, "dropped")
}
