package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dbelyaev/coachbase/internal/flagx"
)

// JsonConfig is an intermediate DTO for reading JSON configuration files.
// Duration fields are given as strings understood by time.ParseDuration
// (e.g. "1h"). After unmarshalling, non-zero values are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr          string `json:"endpoint_addr"`
	DatabaseDSN           string `json:"database_dsn"`
	SecretKey             string `json:"secret_key"`
	TokenValidityDuration string `json:"token_validity_duration"`
	Environment           string `json:"environment"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is given it is
// a no-op. A file that cannot be read or parsed is an error: silently
// running with half a config is worse than not starting.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("config file read error: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("config file parse error: %w", err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.Environment != "" {
		config.Environment = c.Environment
	}
	if c.TokenValidityDuration != "" {
		d, err := time.ParseDuration(c.TokenValidityDuration)
		if err != nil {
			return fmt.Errorf("invalid token_validity_duration: %w", err)
		}
		config.TokenValidityDuration = d
	}

	return nil
}
