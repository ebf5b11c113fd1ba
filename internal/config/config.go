package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Site     SiteConfig
	Email    EmailConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type SiteConfig struct {
	// URL is the public storefront origin; root-relative image paths in
	// outbound email resolve against it.
	URL string
	// AllowedOrigins is the browser origin allow-list for the API. The
	// site URL's origin is always included.
	AllowedOrigins []string
}

type EmailConfig struct {
	// ResendAPIKey enables real delivery; when empty the server logs
	// messages instead of sending them.
	ResendAPIKey string
	AdminAddress string
	OrderFrom    string
	CustomerFrom string
	ContactFrom  string
}

// Load reads configuration from environment variables. A local .env file
// is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Site: SiteConfig{
			URL: strings.TrimRight(getEnv("SITE_URL", "https://charbelabdallah.com"), "/"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			AdminAddress: getEnv("ADMIN_EMAIL", "charbel_g_abdallah@hotmail.com"),
			OrderFrom:    getEnv("ORDER_FROM", "Orders <orders@charbelabdallah.com>"),
			CustomerFrom: getEnv("CUSTOMER_FROM", "Charbel Abdallah <orders@charbelabdallah.com>"),
			ContactFrom:  getEnv("CONTACT_FROM", "Website Contact <orders@charbelabdallah.com>"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	cfg.Site.AllowedOrigins = collectOrigins(
		getEnvAsSlice("ALLOWED_ORIGINS", nil),
		cfg.Site.URL,
	)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if _, err := url.Parse(c.Site.URL); err != nil || c.Site.URL == "" {
		return fmt.Errorf("SITE_URL must be a valid URL")
	}

	if c.Email.AdminAddress == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// collectOrigins normalizes allow-list entries to scheme://host origins,
// dropping anything that does not parse. Malformed entries must not
// silently widen or break the policy.
func collectOrigins(entries []string, siteURL string) []string {
	seen := make(map[string]bool)
	origins := make([]string, 0, len(entries)+1)

	for _, raw := range append(entries, siteURL) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		origin := u.Scheme + "://" + u.Host
		if !seen[origin] {
			seen[origin] = true
			origins = append(origins, origin)
		}
	}

	return origins
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
