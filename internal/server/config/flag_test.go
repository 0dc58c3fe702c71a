package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "30", "-e", "production"},
			expected: Config{
				EndpointAddr:          "127.0.0.1:9090",
				DatabaseDSN:           "db",
				SecretKey:             "secret",
				TokenValidityDuration: 30 * time.Minute,
				Environment:           "production",
			},
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"cmd", "-a", ":9000", "-c", "conf.json"},
			expected: Config{
				EndpointAddr: ":9000",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })

			assert.Equal(t, tt.expected.EndpointAddr, config.EndpointAddr)
			assert.Equal(t, tt.expected.DatabaseDSN, config.DatabaseDSN)
			assert.Equal(t, tt.expected.SecretKey, config.SecretKey)
			assert.Equal(t, tt.expected.Environment, config.Environment)
			assert.Equal(t, tt.expected.TokenValidityDuration, config.TokenValidityDuration)
		})
	}
}
