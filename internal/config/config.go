package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	APIKey      string
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment. A .env file is honored in
// dev; prod uses real env vars.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:  os.Getenv("FUNNELPAY_API_BASE_URL"),
		APIKey:      os.Getenv("FUNNELPAY_API_KEY"),
		HTTPTimeout: 15 * time.Second,
	}

	if v := os.Getenv("FUNNELPAY_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FUNNELPAY_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("FUNNELPAY_API_BASE_URL environment variable is required")
	}

	return cfg, nil
}
