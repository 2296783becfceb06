package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
	AdminJWTSecret     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Capacity policy applied to lazily-created records.
	MaxPatientsPerDay int
	EmergencyBuffer   int

	// Scan horizon for next-available-date lookups.
	NextAvailableHorizonDays int

	// Number of days the load forecast covers.
	ForecastDays int

	DisclaimerLevel string

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Front-desk inbox that receives waitlist promotion notices.
	OperatorEmail string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MaxPatientsPerDay:        getEnvAsInt("MAX_PATIENTS_PER_DAY", 20),
		EmergencyBuffer:          getEnvAsInt("EMERGENCY_BUFFER", 3),
		NextAvailableHorizonDays: getEnvAsInt("NEXT_AVAILABLE_HORIZON_DAYS", 14),
		ForecastDays:             getEnvAsInt("FORECAST_DAYS", 14),

		DisclaimerLevel: getEnv("DISCLAIMER_LEVEL", "medium"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "HealthSync AI"),

		OperatorEmail: getEnv("OPERATOR_EMAIL", ""),
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

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
