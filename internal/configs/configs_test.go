package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears a variable for the duration of the test while keeping
// t.Setenv's automatic restore.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetenv(t, "ENVIRONMENT")
	unsetenv(t, "PORT")
	unsetenv(t, "ALLOWED_ORIGINS")
	unsetenv(t, "MAX_CLIENTS")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9091, cfg.Port)
	assert.Equal(t, 0, cfg.MaxClients)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "8443")
	t.Setenv("ALLOWED_ORIGINS", "https://hotel.example.com,https://staging.example.com")
	t.Setenv("MAX_CLIENTS", "50")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8443, cfg.Port)
	assert.Equal(t, []string{"https://hotel.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 50, cfg.MaxClients)
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "80")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "not-a-number")

	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsNegativeMaxClients(t *testing.T) {
	unsetenv(t, "PORT")
	t.Setenv("MAX_CLIENTS", "-1")

	_, err := LoadConfig()
	assert.Error(t, err)
}
