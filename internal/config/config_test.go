package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults apply without a config file", func(t *testing.T) {
		// Given: No config file on disk
		path := filepath.Join(t.TempDir(), "config.yml")

		// When: Loading the config
		config, err := Load(path)

		// Then: Every field has its default
		require.NoError(t, err)
		assert.Equal(t, "8000", config.Port)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, 54*time.Second, config.WebSocket.PingPeriod)
		assert.Equal(t, 60*time.Second, config.WebSocket.PongWait)
		assert.Equal(t, 10*time.Second, config.WebSocket.WriteWait)
		assert.Equal(t, 64, config.WebSocket.SendBuffer)
		assert.False(t, config.Redis.Enabled)
		assert.Equal(t, "localhost:6379", config.Redis.GetRedisAddr())
		assert.Equal(t, int64(20), config.Redis.HistorySize)
	})

	t.Run("File values are read and the environment overrides them", func(t *testing.T) {
		// Given: A config file and a PORT variable
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "port: \"9000\"\nlog-level: debug\nredis:\n  enabled: true\n  host: redis\n  history-size: 5\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		t.Setenv("PORT", "9100")

		// When: Loading the config
		config, err := Load(path)

		// Then: The file is honoured and PORT wins
		require.NoError(t, err)
		assert.Equal(t, "9100", config.Port)
		assert.Equal(t, "debug", config.LogLevel)
		assert.True(t, config.Redis.Enabled)
		assert.Equal(t, "redis:6379", config.Redis.GetRedisAddr())
		assert.Equal(t, int64(5), config.Redis.HistorySize)
	})

	t.Run("Malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("MustLoad panics on a malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}
