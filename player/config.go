// Package player runs the playback pipeline: a polling session that turns
// live playlists into PCM, a sink that feeds the audio device, and the
// latest-value signal that switches channels between them.
package player

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries every interval and bound the playback loops run on.
// Tests inject millisecond values so loop behavior is observable without
// real-time waits.
type Config struct {
	// PollInterval is the fixed cadence between playlist polls.
	PollInterval time.Duration

	// RetryBackoff is the sleep after a failed resolve, playlist fetch,
	// or key fetch before the next attempt.
	RetryBackoff time.Duration

	// DeviceRetryInterval is the sleep between attempts to open the
	// audio device when none is available yet.
	DeviceRetryInterval time.Duration

	// HTTPTimeout bounds each individual network request.
	HTTPTimeout time.Duration

	// SeenWindow bounds the per-channel segment dedup set. Oldest
	// entries are evicted first.
	SeenWindow int

	// MaxRedirects bounds master-to-media playlist hops during resolve.
	MaxRedirects int
}

// DefaultConfig returns production playback settings.
func DefaultConfig() *Config {
	return &Config{
		PollInterval:        5 * time.Second,
		RetryBackoff:        5 * time.Second,
		DeviceRetryInterval: 2 * time.Second,
		HTTPTimeout:         15 * time.Second,
		SeenWindow:          512,
		MaxRedirects:        4,
	}
}

// fileConfig is the YAML shape. Durations are strings ("5s", "250ms");
// absent fields keep their defaults.
type fileConfig struct {
	PollInterval        string `yaml:"poll_interval"`
	RetryBackoff        string `yaml:"retry_backoff"`
	DeviceRetryInterval string `yaml:"device_retry_interval"`
	HTTPTimeout         string `yaml:"http_timeout"`
	SeenWindow          *int   `yaml:"seen_window"`
	MaxRedirects        *int   `yaml:"max_redirects"`
}

// LoadConfig overlays the YAML file at path onto DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := DefaultConfig()
	if err := overlayDuration(&cfg.PollInterval, "poll_interval", fc.PollInterval); err != nil {
		return nil, err
	}
	if err := overlayDuration(&cfg.RetryBackoff, "retry_backoff", fc.RetryBackoff); err != nil {
		return nil, err
	}
	if err := overlayDuration(&cfg.DeviceRetryInterval, "device_retry_interval", fc.DeviceRetryInterval); err != nil {
		return nil, err
	}
	if err := overlayDuration(&cfg.HTTPTimeout, "http_timeout", fc.HTTPTimeout); err != nil {
		return nil, err
	}
	if fc.SeenWindow != nil {
		if *fc.SeenWindow < 1 {
			return nil, fmt.Errorf("config: seen_window must be positive")
		}
		cfg.SeenWindow = *fc.SeenWindow
	}
	if fc.MaxRedirects != nil {
		if *fc.MaxRedirects < 0 {
			return nil, fmt.Errorf("config: max_redirects must not be negative")
		}
		cfg.MaxRedirects = *fc.MaxRedirects
	}
	return cfg, nil
}

func overlayDuration(dst *time.Duration, name, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid %s: %w", name, err)
	}
	if d <= 0 {
		return fmt.Errorf("config: %s must be positive", name)
	}
	*dst = d
	return nil
}
