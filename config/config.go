package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// insecure fallback kept for local development only
const defaultJWTSecret = "newshub-secret-key"

type HTTP struct {
	Port            string
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type Mongo struct {
	URI      string
	Database string
}

type JWT struct {
	Secret string
	TTL    time.Duration
}

type SMTP struct {
	Host       string
	Port       string
	Username   string
	Password   string
	Sender     string
	AdminEmail string
}

type Log struct {
	Level      string
	JSON       bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type Config struct {
	Env       string
	HTTP      HTTP
	Mongo     Mongo
	JWT       JWT
	SMTP      SMTP
	Log       Log
	RateLimit RateLimit
}

// Load reads the whole configuration from environment variables. Call
// godotenv.Load() before this so a local .env is picked up.
func Load() *Config {
	c := &Config{
		Env: getEnv("APP_ENV", "development"),
		HTTP: HTTP{
			Port:            getEnv("PORT", "5000"),
			ReadTimeoutSec:  getEnvInt("HTTP_READ_TIMEOUT_SEC", 15),
			WriteTimeoutSec: getEnvInt("HTTP_WRITE_TIMEOUT_SEC", 15),
			IdleTimeoutSec:  getEnvInt("HTTP_IDLE_TIMEOUT_SEC", 60),
		},
		Mongo: Mongo{
			URI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
			Database: getEnv("MONGODB_DATABASE", "newshub"),
		},
		JWT: JWT{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
			TTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 7*24)) * time.Hour,
		},
		SMTP: SMTP{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnv("SMTP_PORT", "587"),
			Username:   getEnv("SMTP_USER", ""),
			Password:   getEnv("SMTP_PASS", ""),
			Sender:     getEnv("SMTP_SENDER", ""),
			AdminEmail: getEnv("ADMIN_EMAIL", "admin@newshub.local"),
		},
		Log: Log{
			Level:      getEnv("LOG_LEVEL", "info"),
			JSON:       getEnvBool("LOG_JSON", false),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
		RateLimit: RateLimit{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 1),
			Burst: getEnvInt("RATE_LIMIT_BURST", 10),
		},
	}

	if c.JWT.Secret == defaultJWTSecret && c.Env == "production" {
		log.Println("WARNING: JWT_SECRET is not set, using the insecure default")
	}

	return c
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
