package player

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.RetryBackoff)
	assert.Equal(t, 2*time.Second, cfg.DeviceRetryInterval)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 512, cfg.SeenWindow)
	assert.Equal(t, 4, cfg.MaxRedirects)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "radiru.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("partial overlay keeps defaults", func(t *testing.T) {
		path := writeConfigFile(t, "poll_interval: 10s\nseen_window: 64\n")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, cfg.PollInterval)
		assert.Equal(t, 64, cfg.SeenWindow)
		assert.Equal(t, 5*time.Second, cfg.RetryBackoff)
		assert.Equal(t, 4, cfg.MaxRedirects)
	})

	t.Run("full overlay", func(t *testing.T) {
		path := writeConfigFile(t, `poll_interval: 2s
retry_backoff: 1s
device_retry_interval: 500ms
http_timeout: 30s
seen_window: 128
max_redirects: 2
`)

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, cfg.PollInterval)
		assert.Equal(t, time.Second, cfg.RetryBackoff)
		assert.Equal(t, 500*time.Millisecond, cfg.DeviceRetryInterval)
		assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 128, cfg.SeenWindow)
		assert.Equal(t, 2, cfg.MaxRedirects)
	})

	t.Run("invalid duration", func(t *testing.T) {
		path := writeConfigFile(t, "poll_interval: soon\n")

		_, err := LoadConfig(path)

		assert.Error(t, err)
	})

	t.Run("non-positive interval", func(t *testing.T) {
		path := writeConfigFile(t, "retry_backoff: -1s\n")

		_, err := LoadConfig(path)

		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

		assert.Error(t, err)
	})
}
