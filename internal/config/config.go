package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	DatabaseDSN string

	SessionBackend string // "postgres" (default) or "redis"
	SessionTTL     time.Duration

	RedisAddr     string
	RedisPassword string

	BcryptCost int

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string

	WelcomeAttachment string
}

func Load() Config {

	cfg := Config{

		AppPort: getEnv("APP_PORT", "3000"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		SessionBackend: getEnv("SESSION_BACKEND", "postgres"),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		BcryptCost: getInt("BCRYPT_COST", 10),

		MailHost:     os.Getenv("MAIL_HOST"),
		MailPort:     getInt("MAIL_PORT", 465),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),

		WelcomeAttachment: getEnv("WELCOME_ATTACHMENT", "./public/welcome.pdf"),
	}

	return cfg

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
