package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug, slog.Level(-8)},
		{"warn level", "warn", slog.LevelWarn, slog.LevelInfo},
		{"error level", "error", slog.LevelError, slog.LevelWarn},
		{"default info", "", slog.LevelInfo, slog.LevelDebug},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			assert.True(t, logger.Enabled(ctx, tt.enabled))
			assert.False(t, logger.Enabled(ctx, tt.muted))
		})
	}
}

func TestNewWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Info("appointment created", "appointment_id", 42)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "appointment created", line["msg"])
	assert.Equal(t, float64(42), line["appointment_id"])
}

func TestDiscardIsQuiet(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	logger.Error("ignored")
}
