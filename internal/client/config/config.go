// Package config handles configuration for the CLI client: defaults,
// environment variables, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the CoachBase CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerURL      string        `env:"COACHBASE_SERVER"`
	RequestTimeout time.Duration `env:"COACHBASE_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present), and command-line flags. Later
// sources take precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
