package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. It is
// loaded once at startup and passed explicitly to component constructors;
// nothing else in the codebase reads ambient env vars.
type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir string

	RateLimitAuth time.Duration

	// Optional bootstrap superadmin, created at startup when all three are set.
	SuperadminUsername string
	SuperadminEmail    string
	SuperadminPassword string
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (env vars may come from the platform)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		SuperadminUsername: os.Getenv("SUPERADMIN_USERNAME"),
		SuperadminEmail:    os.Getenv("SUPERADMIN_EMAIL"),
		SuperadminPassword: os.Getenv("SUPERADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = buildDSN()
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev_only_secret" // development fallback
	}

	var err error
	cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.RateLimitAuth, err = time.ParseDuration(getEnv("RATE_LIMIT_AUTH", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH: %w", err)
	}

	return cfg, nil
}

// buildDSN assembles a postgres DSN from the individual DB_* variables when
// DATABASE_URL is not set.
func buildDSN() string {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "lost_and_found")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + password + "@" + host + ":" + port + "/" + name + "?sslmode=" + sslmode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
