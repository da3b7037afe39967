package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const defaultJWTSecret = "dev-secret-change-me"

type AppConfig struct {
	// Server
	HTTPAddr string
	Env      string

	// Data store
	DatabaseURL string
	RedisAddr   string
	RedisPass   string

	// Admin credential signing
	JWTSecret string
	TokenTTL  time.Duration

	// Main application (cache-clear proxy target)
	MainAppURL      string
	MainAppAPIToken string

	// Email provider
	ResendAPIKey  string
	ResendBaseURL string
	FromEmail     string
	FromName      string

	// Notification taxonomy
	MentorDefaultNotificationType string

	// Dev-mode admin seed
	AdminBootstrapUsername string
	AdminBootstrapPassword string
	AdminBootstrapEmail    string
}

// Load reads environment variables into AppConfig with development fallbacks.
// Production constraints are enforced separately by Validate.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Env:      getEnv("APP_ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),

		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:  24 * time.Hour,

		MainAppURL:      getEnv("MAIN_APP_URL", "http://localhost:3000"),
		MainAppAPIToken: getEnv("MAIN_APP_ADMIN_TOKEN", ""),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		ResendBaseURL: getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		FromEmail:     getEnv("RESEND_FROM_EMAIL", "noreply@directiva.mx"),
		FromName:      getEnv("RESEND_FROM_NAME", "Hablemos Emprendimiento"),

		MentorDefaultNotificationType: getEnv("MENTOR_DEFAULT_NOTIFICATION_TYPE", "new_meeting_request"),

		AdminBootstrapUsername: getEnv("ADMIN_BOOTSTRAP_USERNAME", ""),
		AdminBootstrapPassword: getEnv("ADMIN_BOOTSTRAP_PASSWORD", ""),
		AdminBootstrapEmail:    getEnv("ADMIN_BOOTSTRAP_EMAIL", ""),
	}
}

// IsProduction reports whether the panel runs with production constraints.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Validate enforces the settings that must not fall back to dev defaults in
// production: the signing secret and the main-app proxy target.
func (c AppConfig) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be configured in production")
	}
	if c.MainAppURL == "" || c.MainAppURL == "http://localhost:3000" {
		return fmt.Errorf("MAIN_APP_URL must be configured in production")
	}
	if !isValidURL(c.MainAppURL) {
		return fmt.Errorf("MAIN_APP_URL is not a valid http(s) URL: %s", c.MainAppURL)
	}
	return nil
}

func isValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
