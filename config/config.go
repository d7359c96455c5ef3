package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string // Defaults to the SMTP login
	ContactEmailTo string
	// Optional backing services
	RedisURL      string
	RedisPassword string
	DatabaseURL   string
	// Rate Limiting Configuration
	RateLimitEnabled       bool
	RateLimitMaxRequests   int
	RateLimitWindowSeconds int
	// Site content
	StaticDir          string
	TemplateDir        string
	ResumePath         string
	ResumeDownloadName string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; a missing file is fine
	_ = godotenv.Load()

	smtpUsername := getEnv("SMTP_USERNAME", "")

	cfg := &Config{
		AppEnv:   strings.ToLower(getEnv("APP_ENV", "development")),
		Port:     getEnv("PORT", "5001"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   smtpUsername,
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", smtpUsername),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", smtpUsername),
		// Optional backing services
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		// Rate Limiting Configuration
		RateLimitEnabled:       getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitMaxRequests:   getEnvInt("RATE_LIMIT_MAX_REQUESTS", 5),     // 5 messages
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 300), // per 5 minutes
		// Site content
		StaticDir:          getEnv("STATIC_DIR", "web/static"),
		TemplateDir:        getEnv("TEMPLATE_DIR", "web/templates"),
		ResumePath:         getEnv("RESUME_PATH", "web/static/files/resume.pdf"),
		ResumeDownloadName: getEnv("RESUME_DOWNLOAD_NAME", "Resume.pdf"),
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate reports missing mail settings. Outside production they are only
// warnings so the site can be developed without SMTP credentials.
func (c *Config) Validate() (warnings []string, err error) {
	if c.SMTPUsername == "" {
		warnings = append(warnings, "SMTP_USERNAME is not set")
	}
	if c.SMTPPassword == "" {
		warnings = append(warnings, "SMTP_PASSWORD is not set")
	}
	if c.ContactEmailTo == "" {
		warnings = append(warnings, "CONTACT_EMAIL_TO is not set")
	}

	if len(warnings) > 0 && c.IsProduction() {
		return nil, errors.New("missing required configuration: " + strings.Join(warnings, ", "))
	}
	return warnings, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
