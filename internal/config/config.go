// Package config handles loading and validating server configuration.
// Defaults come first, an optional YAML file merges over them, and
// environment variables override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath points at an optional YAML config file.
	EnvConfigPath = "LINEAR_MCP_CONFIG"

	// EnvEndpoint overrides the Linear GraphQL endpoint, mainly for tests
	// and proxies.
	EnvEndpoint = "LINEAR_GRAPHQL_ENDPOINT"

	// EnvTimeoutSeconds overrides the gateway request timeout.
	EnvTimeoutSeconds = "LINEAR_TIMEOUT_SECONDS"

	// EnvMetricsAddr enables the Prometheus /metrics listener when set,
	// e.g. "127.0.0.1:9090".
	EnvMetricsAddr = "LINEAR_METRICS_ADDR"
)

// GatewayConfig contains settings for the Linear GraphQL gateway.
type GatewayConfig struct {
	// Endpoint is the GraphQL URL. Empty means the production Linear API.
	Endpoint string `yaml:"endpoint"`
	// TimeoutSeconds bounds each gateway request.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// MetricsConfig contains settings for the optional Prometheus listener.
type MetricsConfig struct {
	// ListenAddr is the address /metrics is served on. Empty disables the
	// listener; the MCP transport stays on stdio either way.
	ListenAddr string `yaml:"listen_addr"`
}

// Config is the root configuration for the Linear MCP server.
type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			TimeoutSeconds: 30,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// named by LINEAR_MCP_CONFIG when present, then environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Timeout returns the gateway timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Gateway.TimeoutSeconds) * time.Second
}

func (c *Config) mergeFile(path string) error {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("expanding config path %q: %w", path, err)
		}
		path = filepath.Join(home, path[1:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Gateway.Endpoint = v
	}
	if v := os.Getenv(EnvTimeoutSeconds); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", EnvTimeoutSeconds, v)
		}
		c.Gateway.TimeoutSeconds = seconds
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.Metrics.ListenAddr = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Gateway.TimeoutSeconds <= 0 {
		return fmt.Errorf("gateway timeout must be positive, got %d", c.Gateway.TimeoutSeconds)
	}
	return nil
}
