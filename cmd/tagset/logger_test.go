package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/revelaction/tagset/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, parseLevel(tt.in), "parseLevel(%q)", tt.in)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("corpus parsed", "sentences", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "corpus parsed", entry["msg"])
	assert.Equal(t, float64(2), entry["sentences"])
	assert.NotContains(t, entry, "source")
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("rows encoded", "rows", 5)
	assert.Contains(t, buf.String(), "msg=\"rows encoded\"")
	assert.Contains(t, buf.String(), "rows=5")
	assert.Contains(t, buf.String(), "source=")
}
