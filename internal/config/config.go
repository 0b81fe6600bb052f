// Package config loads and watches the beacon service configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"svckit/internal/logger"
)

// Config is the beacon service configuration.
type Config struct {
	// HeartbeatInterval is how often the service logs a heartbeat.
	HeartbeatInterval time.Duration

	Logging logger.Config
}

// rawConfig is used for JSON unmarshaling with duration strings.
type rawConfig struct {
	HeartbeatInterval string        `json:"HeartbeatInterval"`
	Logging           logger.Config `json:"Logging"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		HeartbeatInterval: 30 * time.Second,
		Logging:           logger.DefaultConfig(),
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	raw := rawConfig{Logging: logger.DefaultConfig()}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := &Config{
		HeartbeatInterval: 30 * time.Second,
		Logging:           raw.Logging,
	}
	if raw.HeartbeatInterval != "" {
		d, err := time.ParseDuration(raw.HeartbeatInterval)
		if err != nil {
			return nil, fmt.Errorf("parse HeartbeatInterval: %w", err)
		}
		cfg.HeartbeatInterval = d
	}
	if cfg.HeartbeatInterval <= 0 {
		return nil, fmt.Errorf("HeartbeatInterval must be positive, got %v", cfg.HeartbeatInterval)
	}
	return cfg, nil
}
