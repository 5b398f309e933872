package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Outbound email configuration
	EmailProvider    string
	SendGridAPIKey   string
	EmailFrom        string
	EmailFromName    string
	AdminEmail       string
	EmailSendTimeout time.Duration

	// AWS configuration (SES provider)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Calendly webhook shared secret
	CalendlyWebhookSecret string
}

// Load reads configuration from environment variables. It is called once at
// process start; nothing reads the environment after this point.
func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "3002"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),

		EmailProvider:    strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "sendgrid"))),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:        getEnv("EMAIL_FROM", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "ProDone"),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		EmailSendTimeout: getEnvAsDuration("EMAIL_SEND_TIMEOUT", 10*time.Second),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		CalendlyWebhookSecret: getEnv("CALENDLY_WEBHOOK_SECRET", ""),
	}

	// Lead notifications fall back to the sending account when no distinct
	// operator address is configured.
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.EmailFrom
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList retrieves a comma-separated environment variable as a slice
func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
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
