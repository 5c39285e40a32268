package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultCollectorURL is the script endpoint that stores form submissions.
const DefaultCollectorURL = "https://script.google.com/macros/s/AKfycbykBWLSsxgBaHSQ72jjxOfluK9JIZT6BB7gHuCLEImwan0pfAZOqwB9__UrC13DsUeXIQ/exec"

// Config holds application configuration
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Collector
	CollectorURL     string
	CollectorTimeout time.Duration

	// Redirect targets
	ProductionDomain string
	StagingDomain    string
	StagingMarker    string

	// Embedding and abuse protection
	FrameAncestors     []string
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Submission guard
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	FormTokenTTL  time.Duration

	// Qualified lead alerts
	AlertRecipients     []string
	EmailProvider       string
	SendGridAPIKey      string
	EmailFromAddress    string
	EmailFromName       string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		CollectorURL:     getEnv("COLLECTOR_URL", DefaultCollectorURL),
		CollectorTimeout: getEnvAsDuration("COLLECTOR_TIMEOUT", 15*time.Second),

		ProductionDomain: getEnv("PRODUCTION_DOMAIN", "https://logeix.com"),
		StagingDomain:    getEnv("STAGING_DOMAIN", "https://logeix.webflow.io"),
		StagingMarker:    getEnv("STAGING_MARKER", "webflow.io"),

		FrameAncestors:     getEnvAsList("FRAME_ANCESTORS"),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 0.5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 5),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		FormTokenTTL:  getEnvAsDuration("FORM_TOKEN_TTL", 24*time.Hour),

		AlertRecipients:     getEnvAsList("ALERT_RECIPIENTS"),
		EmailProvider:       strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", ""))),
		SendGridAPIKey:      getEnv("SENDGRID_API_KEY", ""),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Lead Form"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
