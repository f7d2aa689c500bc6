package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("API_URL", "")
	t.Setenv("SESSION_TIMEOUT", "")
	t.Setenv("AUTH_WAIT", "")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "http://localhost:5000", config.API.URL)
	assert.Equal(t, 30*time.Minute, config.Session.Timeout)
	assert.Equal(t, 2*time.Hour, config.Session.MonitorTTL)
	assert.Zero(t, config.Session.AuthWait)
	assert.False(t, config.IsProduction())
}

func TestLoadConfig_Durations(t *testing.T) {
	t.Setenv("SESSION_TIMEOUT", "900")
	t.Setenv("AUTH_WAIT", "250ms")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, config.Session.Timeout)
	assert.Equal(t, 250*time.Millisecond, config.Session.AuthWait)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "API_TIMEOUT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown environment", func(c *Config) { c.Environment = "staging" }, true},
		{"bad api url", func(c *Config) { c.API.URL = "not a url" }, true},
		{"short secret", func(c *Config) { c.Session.Secret = "short" }, true},
		{"ttl shorter than timeout", func(c *Config) { c.Session.MonitorTTL = time.Minute }, true},
		{"dev secret in production", func(c *Config) {
			c.Environment = "production"
			c.Session.Secret = "development-session-secret"
		}, true},
		{"production with secret", func(c *Config) {
			c.Environment = "production"
			c.Session.Secret = "a-real-production-secret"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig("http://localhost:5000")
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
