package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config fields from environment variables using the
// struct's env tags. Variables that are unset leave the current value
// untouched, so defaults survive.
func parseEnv(config *Config) error {
	return env.Parse(config)
}
