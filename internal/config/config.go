package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        string
	CORSOrigins string

	// Auth
	JWTSecret string
	JWTExpiry time.Duration

	// Store
	StoreBackend string // "redis" or "postgres"

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Postgres
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Notifications
	Notifier                 string // "mock" or "provider"
	AiSensyAPIURL            string
	AiSensyAPIKey            string
	ReminderCampaignName     string
	AnnouncementCampaignName string
	SMSAPIURL                string
	SMSAPIKey                string
	ResendAPIKey             string
	ResendFromEmail          string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h")),

		StoreBackend: getEnv("STORE_BACKEND", "redis"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "binduty"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Notifier:                 getEnv("NOTIFIER", "mock"),
		AiSensyAPIURL:            getEnv("AISENSY_API_URL", "https://backend.aisensy.com/campaign/t1/api/v2"),
		AiSensyAPIKey:            getEnv("AISENSY_API_KEY", ""),
		ReminderCampaignName:     getEnv("AISENSY_REMINDER_CAMPAIGN_NAME", "bin_reminder"),
		AnnouncementCampaignName: getEnv("AISENSY_ANNOUNCEMENT_CAMPAIGN_NAME", "issue_alert"),
		SMSAPIURL:                getEnv("SMS_API_URL", ""),
		SMSAPIKey:                getEnv("SMS_API_KEY", ""),
		ResendAPIKey:             getEnv("RESEND_API_KEY", ""),
		ResendFromEmail:          getEnv("RESEND_FROM_EMAIL", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
