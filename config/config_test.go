package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SMTP_USERNAME", "owner@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, "owner@example.com", cfg.SMTPFromEmail)
	assert.Equal(t, "owner@example.com", cfg.ContactEmailTo)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 5, cfg.RateLimitMaxRequests)
	assert.Equal(t, 300, cfg.RateLimitWindowSeconds)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "not-a-number")
	t.Setenv("CONTACT_EMAIL_TO", "inbox@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 5, cfg.RateLimitMaxRequests)
	assert.Equal(t, "inbox@example.com", cfg.ContactEmailTo)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("development only warns", func(t *testing.T) {
		cfg := &Config{AppEnv: "development"}
		warnings, err := cfg.Validate()
		assert.NoError(t, err)
		assert.Len(t, warnings, 3)
	})

	t.Run("production fails on missing mail settings", func(t *testing.T) {
		cfg := &Config{AppEnv: "production", SMTPUsername: "owner@example.com"}
		_, err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SMTP_PASSWORD")
	})

	t.Run("complete production config", func(t *testing.T) {
		cfg := &Config{
			AppEnv:         "production",
			SMTPUsername:   "owner@example.com",
			SMTPPassword:   "secret",
			ContactEmailTo: "owner@example.com",
		}
		warnings, err := cfg.Validate()
		assert.NoError(t, err)
		assert.Empty(t, warnings)
	})
}
