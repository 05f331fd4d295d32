package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", "json")

	l.Debug("hidden")
	l.Info("sale created", "sale_id", "s-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sale created", entry["msg"])
	assert.Equal(t, "s-1", entry["sale_id"])
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug", "text")

	l.Debug("schedule generated", "entries", 60)

	assert.Contains(t, buf.String(), "schedule generated")
	assert.Contains(t, buf.String(), "entries=60")
}
