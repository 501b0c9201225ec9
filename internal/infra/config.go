package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	ServiceDatabaseURL string
	ResendAPIKey       string
	ResendBaseURL      string
	EmailFrom          string
	OrgName            string
	StoragePath        string
	StorageBaseURL     string
	CORSOrigins        []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. A missing DATABASE_URL is not an error here: the API
// must come up in a "not configured" state instead of crashing, so callers
// check Configured before touching the database.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		ServiceDatabaseURL: os.Getenv("SERVICE_DATABASE_URL"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		ResendBaseURL:      getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@yourdomain.com"),
		OrgName:            getEnv("ORG_NAME", "Your Organization"),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		StorageBaseURL:     os.Getenv("STORAGE_BASE_URL"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if cfg.StorageBaseURL == "" {
		cfg.StorageBaseURL = fmt.Sprintf("http://localhost:%s/static", cfg.Port)
	}

	return cfg, nil
}

// Configured reports whether the required database secret is present.
func (c *Config) Configured() bool {
	return c != nil && c.DatabaseURL != ""
}

// SweepDatabaseURL returns the connection string for the notification sweep.
// The sweep prefers the service-role secret and falls back to the regular one.
func (c *Config) SweepDatabaseURL() string {
	if c == nil {
		return ""
	}
	if c.ServiceDatabaseURL != "" {
		return c.ServiceDatabaseURL
	}
	return c.DatabaseURL
}

// ValidateSweep checks the secrets the notifier job cannot run without.
func (c *Config) ValidateSweep() error {
	if c.SweepDatabaseURL() == "" {
		return fmt.Errorf("SERVICE_DATABASE_URL or DATABASE_URL is required")
	}
	if c.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is not configured")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
