package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Google Calendar (service account) Configuration
	GoogleCalendarID       string
	GoogleClientEmail      string
	GooglePrivateKey       string
	CalendarSyncInterval   time.Duration
	CalendarSyncWindowDays int

	PickupQuota int

	AdminJWTSecret string

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	OwnerEmail        string

	CORSAllowedOrigins string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		// Google Calendar (service account) Configuration
		GoogleCalendarID:       getEnv("GOOGLE_CALENDAR_ID", ""),
		GoogleClientEmail:      getEnv("GOOGLE_CLIENT_EMAIL", ""),
		GooglePrivateKey:       getEnv("GOOGLE_PRIVATE_KEY", ""),
		CalendarSyncInterval:   getEnvAsDuration("CALENDAR_SYNC_INTERVAL", 10*time.Second),
		CalendarSyncWindowDays: getEnvAsInt("CALENDAR_SYNC_WINDOW_DAYS", 90),

		PickupQuota: getEnvAsInt("PICKUP_QUOTA", 3),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		// SendGrid Email Configuration
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "予約システム"),
		OwnerEmail:        getEnv("OWNER_EMAIL", ""),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
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
