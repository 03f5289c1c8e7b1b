package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret      string
	GoogleClientID string
	// Only accounts under this email domain may sign in.
	AllowedEmailDomain string

	// Reviewer identities are configuration, not compiled constants:
	// role assignment is resolved against these at sign-in.
	FacultyEmail   string
	WardenEmail    string
	MessAdminEmail string

	AskmeURL  string
	SentryDSN string
	LogLevel  string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// .env is optional; deployments set real env vars
	_ = godotenv.Load()

	return &Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "dev"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "orbiiit"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		JWTSecret:          get("JWT_SECRET", "dev-secret"),
		GoogleClientID:     get("GOOGLE_CLIENT_ID", ""),
		AllowedEmailDomain: strings.TrimPrefix(get("ALLOWED_EMAIL_DOMAIN", "iiitkottayam.ac.in"), "@"),

		FacultyEmail:   strings.ToLower(get("FACULTY_EMAIL", "")),
		WardenEmail:    strings.ToLower(get("WARDEN_EMAIL", "")),
		MessAdminEmail: strings.ToLower(get("MESS_ADMIN_EMAIL", "")),

		AskmeURL:  get("ASKME_URL", ""),
		SentryDSN: get("SENTRY_DSN", ""),
		LogLevel:  get("LOG_LEVEL", "info"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
