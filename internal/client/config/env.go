package config

import "github.com/caarlos0/env/v11"

func parseEnv(config *Config) error {
	return env.Parse(config)
}
