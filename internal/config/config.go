// Package config holds the bridge's application configuration: log level,
// BLE operation timeouts, and the YAML file they can be loaded from.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration for the MCP server process.
type Config struct {
	LogLevel string `yaml:"log_level" default:"info"`

	ScanTimeoutSeconds       int `yaml:"scan_timeout_seconds" default:"10"`
	ConnectTimeoutSeconds    int `yaml:"connect_timeout_seconds" default:"30"`
	NotificationTimeoutSeconds int `yaml:"notification_timeout_seconds" default:"5"`
	TapTimeoutSeconds         int `yaml:"tap_timeout_seconds" default:"10"`
}

// Default returns a Config populated with its struct-tag defaults.
func Default() *Config {
	c := &Config{}
	defaults.SetDefaults(c)
	return c
}

// Load reads a YAML config file from path, filling any field the file
// omits with its struct-tag default.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// ScanTimeout is ScanTimeoutSeconds as a time.Duration.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.ScanTimeoutSeconds) * time.Second
}

// ConnectTimeout is ConnectTimeoutSeconds as a time.Duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// NotificationTimeout is NotificationTimeoutSeconds as a time.Duration.
func (c *Config) NotificationTimeout() time.Duration {
	return time.Duration(c.NotificationTimeoutSeconds) * time.Second
}

// TapTimeout is TapTimeoutSeconds as a time.Duration.
func (c *Config) TapTimeout() time.Duration {
	return time.Duration(c.TapTimeoutSeconds) * time.Second
}

// NewLogger creates a logger configured per LogLevel, using the same
// structured text format the rest of this codebase uses.
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return logger, nil
}
