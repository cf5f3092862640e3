package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	DefaultLanguage string
	DataDir         string

	SessionBackend       string
	SessionRetentionDays int
	SweepInterval        time.Duration

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	DatabaseURL string

	SMSProvider      string
	Fast2SMSAPIKey   string
	Fast2SMSBaseURL  string
	AlertSenderID    string
	EmergencyHotline string

	AdminJWTSecret string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DefaultLanguage: strings.ToLower(getEnv("DEFAULT_LANGUAGE", "en")),
		DataDir:         getEnv("DATA_DIR", "data/health"),

		SessionBackend:       strings.ToLower(getEnv("SESSION_BACKEND", "memory")),
		SessionRetentionDays: getEnvAsInt("SESSION_RETENTION_DAYS", 7),
		SweepInterval:        getEnvAsDuration("SESSION_SWEEP_INTERVAL", 1*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SMSProvider:      strings.ToLower(strings.TrimSpace(getEnv("SMS_PROVIDER", "log"))),
		Fast2SMSAPIKey:   getEnv("FAST2SMS_API_KEY", ""),
		Fast2SMSBaseURL:  getEnv("FAST2SMS_BASE_URL", "https://www.fast2sms.com/dev/bulkV2"),
		AlertSenderID:    getEnv("ALERT_SENDER_ID", "SWASTH"),
		EmergencyHotline: getEnv("EMERGENCY_HOTLINE", "108"),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
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
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
