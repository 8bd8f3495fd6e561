package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"haulage/internal/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for raw, expected := range tests {
		assert.Equal(t, expected, logger.ParseLevel(raw), raw)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Component(logger.NewWithWriter(logger.Config{Env: "production", Level: "info"}, &buf), "dispatch_engine")

	l.Debug().Msg("hidden")
	l.Info().Str("dispatch_id", "d-1").Msg("transition applied")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dispatch_engine", entry["component"])
	assert.Equal(t, "d-1", entry["dispatch_id"])
	assert.Equal(t, "transition applied", entry["message"])
}
