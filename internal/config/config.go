// Package config reads the server configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds everything the server needs at startup. Missing PayPal or
// SMTP settings are not errors: the affected component degrades (placeholder
// payment links, skipped mail) instead of refusing to start, which keeps the
// demo flow usable.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// BaseURL is this server's external URL, used in mails and provider
	// redirects.
	BaseURL string

	// DBPath is the SQLite database path; ":memory:" keeps state for the
	// process lifetime only.
	DBPath string

	// StaticPath is the frontend directory; empty disables static serving.
	StaticPath string

	// ReminderSpec is the cron spec of the reminder sweep.
	ReminderSpec string

	PayPal struct {
		ClientID string
		Secret   string
		// APIBase selects sandbox or live; empty means sandbox.
		APIBase string
	}

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Addr:         ":" + getEnv("PORT", "8080"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		DBPath:       getEnv("DB_PATH", ":memory:"),
		StaticPath:   getEnv("STATIC_PATH", ""),
		ReminderSpec: getEnv("REMINDER_CRON", "0 9 * * *"),
	}

	cfg.PayPal.ClientID = os.Getenv("PAYPAL_CLIENT_ID")
	cfg.PayPal.Secret = os.Getenv("PAYPAL_SECRET")
	cfg.PayPal.APIBase = os.Getenv("PAYPAL_BASE")

	cfg.SMTP.Host = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTP.Port = getEnvInt("SMTP_PORT", 587)
	cfg.SMTP.Username = os.Getenv("EMAIL_USER")
	cfg.SMTP.Password = os.Getenv("EMAIL_PASS")
	cfg.SMTP.From = os.Getenv("EMAIL_FROM")

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
