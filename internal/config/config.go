package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Redis        RedisConfig
	Sentry       SentryConfig
	Notification NotificationConfig
	Matching     MatchingConfig
	Seed         SeedConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
	Release     string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type SentryConfig struct {
	DSN string
}

type NotificationConfig struct {
	Workers int
	Buffer  int
}

// MatchingConfig holds the fallback used when no job matching setting is stored.
type MatchingConfig struct {
	DefaultEnabled bool
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Release:     opt("APP_RELEASE"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		ConnectTimeout:        getEnvAsDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		PoolMinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  getEnvAsDuration("JWT_ACCESS_EXPIRES_IN", time.Hour),
		RefreshExpiresIn: getEnvAsDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       getEnvAsInt("REDIS_DB", 0),
		TTL:      getEnvAsDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.Sentry = SentryConfig{DSN: opt("SENTRY_DSN")}

	cfg.Notification = NotificationConfig{
		Workers: getEnvAsInt("NOTIFY_WORKERS", 4),
		Buffer:  getEnvAsInt("NOTIFY_BUFFER", 256),
	}

	cfg.Matching = MatchingConfig{DefaultEnabled: getEnvAsBool("JOB_MATCHING_DEFAULT", true)}

	cfg.Seed = SeedConfig{
		AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@levelminds.com"),
		AdminPassword: opt("SEED_ADMIN_PASSWORD"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
