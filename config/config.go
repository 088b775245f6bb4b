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

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	ServerPort         int
	LogLevel           slog.Level
	TokenTTL           time.Duration
	CORSAllowedOrigins []string
	AutoMigrate        bool

	// Пусто - используется in-memory хранилище отозванных токенов
	RedisURL string

	S3   S3Config
	SMTP SMTPConfig

	AuthRateLimit float64 // запросов в минуту с одного IP
	AuthRateBurst int

	DefaultAdmin AdminConfig
}

type S3Config struct {
	Endpoint        string
	Region          string
	BucketName      string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UsePathStyle    bool
}

// Enabled reports whether uploads can be configured at all.
func (c S3Config) Enabled() bool {
	return c.BucketName != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Отсутствие .env не считаем ошибкой
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function so it can be tested
// without touching the process environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	var errs []error
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	envInt := func(key string, def int) int {
		raw := env(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
			return def
		}
		return v
	}
	envBool := func(key string, def bool) bool {
		raw := env(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
			return def
		}
		return v
	}

	cfg := &Config{
		DatabaseURL:  env("DATABASE_URL", ""),
		JWTSecretKey: env("JWT_SECRET_KEY", ""),
		ServerPort:   envInt("SERVER_PORT", 8080),
		AutoMigrate:  envBool("AUTO_MIGRATE", true),
		RedisURL:     env("REDIS_URL", ""),
		S3: S3Config{
			Endpoint:        env("S3_ENDPOINT", ""),
			Region:          env("S3_REGION", "auto"),
			BucketName:      env("S3_BUCKET", ""),
			AccessKeyID:     env("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: env("S3_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:   env("S3_PUBLIC_BASE_URL", ""),
			UsePathStyle:    envBool("S3_USE_PATH_STYLE", false),
		},
		SMTP: SMTPConfig{
			Host:     env("SMTP_HOST", ""),
			Port:     envInt("SMTP_PORT", 587),
			Username: env("SMTP_USER", ""),
			Password: env("SMTP_PASS", ""),
			From:     env("SMTP_FROM", ""),
		},
		AuthRateBurst: envInt("AUTH_RATE_BURST", 5),
		DefaultAdmin: AdminConfig{
			Name:     env("DEFAULT_ADMIN_NAME", "Administrator"),
			Email:    env("DEFAULT_ADMIN_EMAIL", ""),
			Password: env("DEFAULT_ADMIN_PASSWORD", ""),
		},
	}

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL environment variable is not set"))
	}
	if cfg.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY environment variable is not set"))
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort))
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
	}

	ttl, err := time.ParseDuration(env("TOKEN_TTL", "24h"))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("invalid TOKEN_TTL: %w", err))
	case ttl <= 0:
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", ttl))
	}
	cfg.TokenTTL = ttl

	rate, err := strconv.ParseFloat(env("AUTH_RATE_LIMIT", "10"), 64)
	if err != nil || rate <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT must be a positive number"))
	}
	cfg.AuthRateLimit = rate

	for _, origin := range strings.Split(env("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}
