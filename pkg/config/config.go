package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	RedisURL        string
	BoardCacheTTL   time.Duration
	JWTSecret       string
	JWTAccessExpiry time.Duration
	CookieSecure    bool
	CookieDomain    string
	FrontendURL     string
	AllowedOrigins  []string
	LogLevel        string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	frontendURL := getEnv("FRONTEND_URL", "http://localhost:5173")
	origins := []string{frontendURL, "http://localhost:5174", "http://127.0.0.1:5174"}
	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		Port:            getEnv("PORT", "5000"),
		DatabaseURL:     databaseURL(),
		RedisURL:        getEnv("REDIS_URL", ""),
		BoardCacheTTL:   getDuration("BOARD_CACHE_TTL", 30*time.Second),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry: getDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
		CookieSecure:    getBool("COOKIE_SECURE", getEnv("APP_ENV", "development") == "production"),
		CookieDomain:    getEnv("COOKIE_DOMAIN", ""),
		FrontendURL:     frontendURL,
		AllowedOrigins:  origins,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// databaseURL prefers DATABASE_URL and otherwise builds a postgres DSN from
// the individual DB_* variables.
func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "delivery_management"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
