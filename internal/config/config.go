// Package config handles loading application configuration from environment variables.
// All settings have sensible defaults for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application settings loaded from environment variables.
type Config struct {
	Port               string
	BaseURL            string
	SessionMaxAge      time.Duration
	ReaperInterval     time.Duration
	KeepaliveInterval  time.Duration
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	TrustedProxies     []string
}

// Load reads configuration from environment variables, using defaults where not set.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		SessionMaxAge:      getDurationEnv("SESSION_MAX_AGE", 60*time.Minute),
		ReaperInterval:     getDurationEnv("REAPER_INTERVAL", 30*time.Minute),
		KeepaliveInterval:  getDurationEnv("KEEPALIVE_INTERVAL", 15*time.Second),
		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 10),
		CORSAllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS"),
		TrustedProxies:     getStringSliceEnv("TRUSTED_PROXIES"),
	}
}

func getStringSliceEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var result []string
	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
