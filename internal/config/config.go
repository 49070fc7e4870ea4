package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service. It is loaded once
// in main and passed by value into constructors; the signing secret is never
// re-read after startup.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Mail     MailConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	BaseURL               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret              string
	BcryptCost             int
	CodeWindowMinutes      int
	ConfirmTokenTTLMinutes int
	RecoverTokenTTLMinutes int
	SessionTTLDays         int
}

// MailConfig holds outbound email settings.
type MailConfig struct {
	ResendAPIKey string
	EmailFrom    string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "digital-menu-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			BaseURL:               getEnv("APP_BASE_URL", "http://localhost:8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:              getEnv("AUTH_JWT_SECRET", "dev-secret"),
			BcryptCost:             getEnvAsInt("AUTH_BCRYPT_COST", 8),
			CodeWindowMinutes:      getEnvAsInt("AUTH_CODE_WINDOW_MINUTES", 5),
			ConfirmTokenTTLMinutes: getEnvAsInt("AUTH_CONFIRM_TOKEN_TTL_MINUTES", 5),
			RecoverTokenTTLMinutes: getEnvAsInt("AUTH_RECOVER_TOKEN_TTL_MINUTES", 15),
			SessionTTLDays:         getEnvAsInt("AUTH_SESSION_TTL_DAYS", 7),
		},
		Mail: MailConfig{
			ResendAPIKey: os.Getenv("MAIL_RESEND_API_KEY"),
			EmailFrom:    getEnv("MAIL_EMAIL_FROM", "no-reply@example.com"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CodeWindow returns the symmetric freshness window for one-time codes.
func (a AuthConfig) CodeWindow() time.Duration {
	if a.CodeWindowMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(a.CodeWindowMinutes) * time.Minute
}

// ConfirmTokenTTL returns the lifetime of signed email-confirmation tokens.
func (a AuthConfig) ConfirmTokenTTL() time.Duration {
	if a.ConfirmTokenTTLMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(a.ConfirmTokenTTLMinutes) * time.Minute
}

// RecoverTokenTTL returns the lifetime of signed password-recovery tokens.
func (a AuthConfig) RecoverTokenTTL() time.Duration {
	if a.RecoverTokenTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(a.RecoverTokenTTLMinutes) * time.Minute
}

// SessionTTL returns the lifetime of a session.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLDays <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(a.SessionTTLDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
