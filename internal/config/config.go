package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Redis (optional, fans form events out across instances)
	RedisURL string

	// CORS
	AllowedOrigins []string

	// Booking service
	BookingAPIBaseURL string
	BookingAPIToken   string

	// Property service
	PropertyAPIBaseURL string
	PropertyAPIToken   string

	UpstreamTimeoutSeconds int

	// Booking forms
	ConfirmationDelay time.Duration
	FormIdleTTL       time.Duration

	// Observability
	LogLevel       string
	MetricsEnabled bool
	OTLPEndpoint   string
	OTLPInsecure   bool
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		// Booking service
		BookingAPIBaseURL: getEnv("BOOKING_API_BASE_URL", "http://localhost:3000"),
		BookingAPIToken:   getEnv("BOOKING_API_TOKEN", ""),

		// Property service
		PropertyAPIBaseURL: getEnv("PROPERTY_API_BASE_URL", "http://localhost:3000"),
		PropertyAPIToken:   getEnv("PROPERTY_API_TOKEN", ""),

		UpstreamTimeoutSeconds: parseInt(getEnv("UPSTREAM_TIMEOUT_SECONDS", "10"), 10),

		// Booking forms
		ConfirmationDelay: parseDuration(getEnv("CONFIRMATION_DELAY", "2s"), 2*time.Second),
		FormIdleTTL:       parseDuration(getEnv("FORM_IDLE_TTL", "30m"), 30*time.Minute),

		// Observability
		LogLevel:       getEnv("LOG_LEVEL", "debug"),
		MetricsEnabled: parseBool(getEnv("METRICS_ENABLED", "true"), true),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:   parseBool(getEnv("OTEL_EXPORTER_OTLP_INSECURE", "true"), true),
	}
}

// UpstreamTimeout is the per-request timeout for the booking and property services.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func parseBool(s string, defaultValue bool) bool {
	value, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
