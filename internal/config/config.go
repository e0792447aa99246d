package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
// Missing provider or Gemini credentials do not prevent startup; the
// affected endpoints degrade with explicit error payloads instead.
type Config struct {
	Port     string
	LogLevel string

	GeminiAPIKey string
	GeminiModel  string

	NaverClientID     string
	NaverClientSecret string

	// CacheBackend selects "redis" or "postgres".
	CacheBackend string
	RedisAddr    string
	DBHost       string
	DBPort       string
	DBName       string
	DBUser       string
	DBPass       string
	CacheTable   string

	CacheTTLSeconds int64
	MaxItems        int

	// RefreshCron is the schedule for the out-of-band cache refresher.
	// Empty disables it.
	RefreshCron string
}

// Load reads configuration from the environment, after loading an
// optional .env file for local development.
func Load() Config {
	_ = godotenv.Load()

	// Distinguish "unset" from "explicitly empty": an empty REFRESH_CRON
	// disables the scheduled refresh.
	refreshCron := "@hourly"
	if v, ok := os.LookupEnv("REFRESH_CRON"); ok {
		refreshCron = v
	}

	return Config{
		Port:     envOrDefault("PORT", "8080"),
		LogLevel: envOrDefault("LOG_LEVEL", "info"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOrDefault("GEMINI_MODEL", "gemini-2.5-pro"),

		NaverClientID:     os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),

		CacheBackend: envOrDefault("CACHE_BACKEND", "redis"),
		RedisAddr:    envOrDefault("REDIS_ADDR", "localhost:6379"),
		DBHost:       envOrDefault("DB_HOST", "localhost"),
		DBPort:       envOrDefault("DB_PORT", "5432"),
		DBName:       envOrDefault("DB_NAME", "news_db"),
		DBUser:       envOrDefault("DB_USER", "news_user"),
		DBPass:       os.Getenv("DB_PASS"),
		CacheTable:   envOrDefault("CACHE_TABLE", "news_cache"),

		CacheTTLSeconds: envInt64("CACHE_TTL_SECONDS", 3600),
		MaxItems:        int(envInt64("MAX_ITEMS", 12)),

		RefreshCron: refreshCron,
	}
}

func envOrDefault(key, d string) string {
	v := os.Getenv(key)
	if v == "" {
		return d
	}
	return v
}

func envInt64(key string, d int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return d
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return d
	}
	return n
}
