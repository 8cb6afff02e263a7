package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DatabaseURL           string
	JWTSecret             string
	DataEncryptionKey     string
	BlindIndexKey         string
	Environment           string
	RunMigrations         bool
	MigrationsDir         string
	MaxBodyBytes          int64
	RateLimitPerMinute    int
	RedisURL              string
	MetricsEnabled        bool
	IdentityRetentionDays int
	RetentionInterval     time.Duration
	ShutdownTimeout       time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory, or the files named in ENV_FILE, is loaded first without
// overriding variables that are already set.
func Load() Config {
	loadDotEnv()
	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		DataEncryptionKey:     getEnv("DATA_ENCRYPTION_KEY", ""),
		BlindIndexKey:         getEnv("BLIND_INDEX_KEY", ""),
		Environment:           getEnv("APP_ENV", "development"),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:         getEnv("MIGRATIONS_DIR", "migrations"),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		RedisURL:              getEnv("REDIS_URL", ""),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
		IdentityRetentionDays: getEnvInt("IDENTITY_RETENTION_DAYS", 90),
		RetentionInterval:     getEnvDuration("RETENTION_INTERVAL", 24*time.Hour),
		ShutdownTimeout:       getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadDotEnv() {
	var files []string
	if raw := strings.TrimSpace(os.Getenv("ENV_FILE")); raw != "" {
		files = strings.Split(raw, ",")
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("env file not loaded", "err", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.IsProduction() {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if strings.TrimSpace(c.BlindIndexKey) == "" {
			return fmt.Errorf("BLIND_INDEX_KEY must be set in production for CURP lookups")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.IdentityRetentionDays < 0 {
		return fmt.Errorf("IDENTITY_RETENTION_DAYS must not be negative")
	}
	return nil
}

// IdentityRetention is how long identity extractions are kept. Zero keeps
// them forever.
func (c Config) IdentityRetention() time.Duration {
	return time.Duration(c.IdentityRetentionDays) * 24 * time.Hour
}
