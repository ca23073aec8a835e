package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken    string
	RedisURL         string
	LogLevel         string
	Environment      string
	CronSpecAnnounce string        // Monthly announcement trigger
	AnnounceCatchUp  bool          // Run a missed announcement at startup
	ClarifyTimeout   time.Duration // How long to wait for a clarification reply
	StoreTimeout     time.Duration // Per-operation bound on store calls
	BroadcastRate    float64       // Broadcast sends per second across communities
	BroadcastBurst   int
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecAnnounce = os.Getenv("CRON_SPEC_ANNOUNCE")
	if cfg.CronSpecAnnounce == "" {
		cfg.CronSpecAnnounce = "0 10 1 * *" // Default: 10:00 AM on the 1st of the month
	}

	var err error
	cfg.AnnounceCatchUp, err = boolEnv("ANNOUNCE_CATCH_UP", false)
	if err != nil {
		return nil, err
	}

	cfg.ClarifyTimeout, err = durationEnv("CLARIFY_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.StoreTimeout, err = durationEnv("STORE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.BroadcastRate, err = floatEnv("BROADCAST_RATE", 1)
	if err != nil {
		return nil, err
	}

	cfg.BroadcastBurst, err = intEnv("BROADCAST_BURST", 5)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func boolEnv(name string, def bool) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func floatEnv(name string, def float64) (float64, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
