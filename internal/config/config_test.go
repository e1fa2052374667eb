package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://api.donorlink.example")
		t.Setenv("TOKEN_PATH", "/tmp/donorlink-token")
		t.Setenv("APP_ENV", "test")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "30")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "https://api.donorlink.example", cfg.APIBaseURL)
		assert.Equal(t, "/tmp/donorlink-token", cfg.TokenPath)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, float64(20), cfg.RequestsPerSecond)
		assert.Equal(t, 40, cfg.RequestBurst)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://api.donorlink.example")
		t.Setenv("TOKEN_PATH", "")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "")

		cfg := LoadConfig()

		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.NotEmpty(t, cfg.TokenPath)
		assert.Contains(t, cfg.TokenPath, ".donorlink")
	})

	t.Run("Invalid timeout falls back to default", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://api.donorlink.example")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "not-a-number")

		cfg := LoadConfig()
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	})
}
