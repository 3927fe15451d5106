package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, 50, cfg.MaxHistory)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("BRACKET_ADDR", ":9090")
	t.Setenv("BRACKET_LOG_LEVEL", "debug")
	t.Setenv("BRACKET_LOG_FORMAT", "json")
	t.Setenv("BRACKET_SESSION_LIFETIME", "30m")
	t.Setenv("BRACKET_MAX_HISTORY", "5")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Minute, cfg.SessionLifetime)
	assert.Equal(t, 5, cfg.MaxHistory)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "log level", key: "BRACKET_LOG_LEVEL", value: "loud"},
		{name: "log format", key: "BRACKET_LOG_FORMAT", value: "xml"},
		{name: "session lifetime", key: "BRACKET_SESSION_LIFETIME", value: "-1h"},
		{name: "history", key: "BRACKET_MAX_HISTORY", value: "0"},
		{name: "history not a number", key: "BRACKET_MAX_HISTORY", value: "many"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
