package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	JWTSecret string

	// Postgres
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// External interpretation service
	AIServiceURL     string
	AIServiceTimeout time.Duration

	// Firebase Cloud Messaging (optional push channel)
	FirebaseCredentials string

	// Scheduler
	SchedulerEnabled bool

	// Notification replay bound on subscribe
	PendingReplayLimit int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	aiTimeout := 30 * time.Second
	if t := os.Getenv("AI_SERVICE_TIMEOUT"); t != "" {
		if parsed, err := time.ParseDuration(t); err == nil {
			aiTimeout = parsed
		}
	}

	replayLimit := 5
	if v := os.Getenv("PENDING_REPLAY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			replayLimit = parsed
		}
	}

	schedulerEnabled := true
	if v := os.Getenv("SCHEDULER_ENABLED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			schedulerEnabled = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "assistant"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		AIServiceURL:        getEnv("AI_SERVICE_URL", "http://localhost:8000"),
		AIServiceTimeout:    aiTimeout,
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		SchedulerEnabled:    schedulerEnabled,
		PendingReplayLimit:  replayLimit,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
