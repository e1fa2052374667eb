package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPTimeout = 15 * time.Second

	// Client-side throttle, sized for a frontend-heavy API.
	defaultRequestsPerSecond = 20
	defaultRequestBurst      = 40
)

type Config struct {
	APIBaseURL        string
	TokenPath         string
	AppEnv            string
	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	RequestBurst      int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:        os.Getenv("API_BASE_URL"),
		TokenPath:         os.Getenv("TOKEN_PATH"),
		AppEnv:            os.Getenv("APP_ENV"),
		HTTPTimeout:       defaultHTTPTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
		RequestBurst:      defaultRequestBurst,
	}

	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.HTTPTimeout = time.Duration(secs) * time.Second
		}
	}

	if cfg.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.TokenPath = filepath.Join(home, ".donorlink", "token")
		}
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("API_BASE_URL is not set")
	}

	return cfg
}
