package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	DatabaseURL string
	// DatabasePublicURL is an optional low-privilege DSN. When set, the
	// repositories reachable from unauthenticated routes use it, so the
	// service credentials never back a public endpoint.
	DatabasePublicURL string
	CORSOrigin        string

	RedisURL string // empty disables the persisted cache tier

	SessionTTL    time.Duration
	AdminEmail    string
	AdminPassword string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
	LeadsInbox string
}

func Load() Config {
	return Config{
		Addr:              getenv("API_ADDR", ":8080"),
		DatabaseURL:       getenv("DATABASE_URL", ""),
		DatabasePublicURL: getenv("DATABASE_PUBLIC_URL", ""),
		CORSOrigin:        getenv("CORS_ORIGIN", "*"),
		RedisURL:          getenv("REDIS_URL", ""),
		SessionTTL:        time.Duration(getenvInt("SESSION_TTL_SECONDS", 86400)) * time.Second,
		AdminEmail:        getenv("ADMIN_EMAIL", ""),
		AdminPassword:     getenv("ADMIN_PASSWORD", ""),
		RabbitUser:        getenv("RABBITMQ_USER", ""),
		RabbitPass:        getenv("RABBITMQ_PASS", ""),
		RabbitHost:        getenv("RABBITMQ_HOST", "localhost"),
		RabbitPort:        getenv("RABBITMQ_PORT", "5672"),
		SMTPHost:          getenv("SMTP_HOST", ""),
		SMTPPort:          getenvInt("SMTP_PORT", 587),
		SMTPUser:          getenv("SMTP_USER", ""),
		SMTPPass:          getenv("SMTP_PASS", ""),
		SMTPFrom:          getenv("SMTP_FROM", "no-reply@wheelstreet.lt"),
		LeadsInbox:        getenv("LEADS_INBOX", ""),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
