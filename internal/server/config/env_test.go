package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("AUTH_SECRET", "from-env")
	t.Setenv("TOKEN_VALIDITY", "30m")

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseEnv(c))

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.TokenValidityDuration)
	// untouched vars keep their defaults
	assert.Equal(t, EnvDevelopment, c.Environment)
}
