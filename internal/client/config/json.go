package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dbelyaev/coachbase/internal/flagx"
)

// JsonConfig is the DTO for the optional JSON config file. Durations are
// strings understood by time.ParseDuration.
type JsonConfig struct {
	ServerURL      string `json:"server_url"`
	RequestTimeout string `json:"request_timeout"`
}

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

	if c.ServerURL != "" {
		config.ServerURL = c.ServerURL
	}
	if c.RequestTimeout != "" {
		d, err := time.ParseDuration(c.RequestTimeout)
		if err != nil {
			return fmt.Errorf("invalid request_timeout: %w", err)
		}
		config.RequestTimeout = d
	}

	return nil
}
