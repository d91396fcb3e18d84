package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken       string
	WeatherAPIKey       string
	WeatherAPIBaseURL   string
	WeatherAPITimeout   time.Duration
	DatabaseURL         string
	LogLevel            string
	Environment         string
	TimeZone            string
	Location            *time.Location // TimeZone, loaded
	CronSpecNotify      string         // Hourly notification tick
	NotificationWorkers int
	TelegramSendRate    float64 // messages per second
	HTTPAddr            string  // Empty disables /healthz and /metrics
	ContactUsername     string
	BotLink             string
	AdminTelegramID     int64 // 0 disables admin commands
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Errors are ignored if the file doesn't exist; existing env variables are not overridden.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.WeatherAPIBaseURL = strings.TrimRight(getEnv("WEATHER_API_BASE_URL", "https://api.weatherapi.com/v1"), "/")

	cfg.WeatherAPITimeout, err = time.ParseDuration(getEnv("WEATHER_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_API_TIMEOUT: %w", err)
	}
	if cfg.WeatherAPITimeout <= 0 {
		return nil, fmt.Errorf("WEATHER_API_TIMEOUT must be positive")
	}

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	cfg.TimeZone = getEnv("TIMEZONE", "Asia/Tashkent")
	cfg.Location, err = time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.TimeZone, err)
	}

	cfg.CronSpecNotify = getEnv("CRON_SPEC_NOTIFICATIONS", "0 * * * *") // Top of every hour

	cfg.NotificationWorkers, err = strconv.Atoi(getEnv("NOTIFICATION_WORKERS", "4"))
	if err != nil || cfg.NotificationWorkers < 1 {
		return nil, fmt.Errorf("invalid NOTIFICATION_WORKERS: must be a positive integer")
	}

	cfg.TelegramSendRate, err = strconv.ParseFloat(getEnv("TELEGRAM_SEND_RATE", "25"), 64)
	if err != nil || cfg.TelegramSendRate <= 0 {
		return nil, fmt.Errorf("invalid TELEGRAM_SEND_RATE: must be a positive number")
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	cfg.ContactUsername = strings.TrimPrefix(os.Getenv("CONTACT_USERNAME"), "@")
	cfg.BotLink = os.Getenv("BOT_LINK")

	if adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID"); adminIDStr != "" {
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
