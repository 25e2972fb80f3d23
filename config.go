package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything read from the environment at startup. It is built
// once in main and passed to the handlers that need it, so tests can
// construct their own instead of poking at os.Setenv.
type Config struct {
	Port   string
	DBPath string

	// SMTP delivery settings for the contact form.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	// ContactFrom is the fixed envelope sender, ContactTo the inbox that
	// receives contact form submissions.
	ContactFrom string
	ContactTo   string

	// Per-IP rate limit on POST /api/contact.
	ContactRateMax    int
	ContactRateWindow time.Duration

	AdminUsername string
	AdminPassword string
}

func loadConfig() (*Config, error) {
	cfg := &Config{
		Port:              envOr("PORT", "8080"),
		DBPath:            envOr("DB_PATH", "portfolio.db"),
		SMTPHost:          envOr("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          envOr("SMTP_PORT", "587"),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		ContactFrom:       envOr("CONTACT_FROM", "portfolio@corentin-lanaud.fr"),
		ContactTo:         os.Getenv("CONTACT_TO"),
		ContactRateMax:    envOrInt("RATE_LIMIT_CONTACT_MAX", 5),
		ContactRateWindow: time.Duration(envOrInt("RATE_LIMIT_CONTACT_WINDOW", 60)) * time.Second,
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.ContactTo == "" {
		return nil, fmt.Errorf("CONTACT_TO is not set in environment variables")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
