package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"notesapi/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Host     string
	Port     string
	LogLevel string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheDriver   string
	CacheTTL      time.Duration

	AccessTokenKey  string
	RefreshTokenKey string
	AccessTokenAge  time.Duration

	RequestTimeout time.Duration
	ExportQueue    string

	StorageDriver  string
	UploadDir      string
	UploadMaxBytes int64
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
}

// Load reads the .env file (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	cfg := &Config{
		Host:          env("HOST", "localhost"),
		Port:          env("PORT", "5000"),
		LogLevel:      env("LOG_LEVEL", "info"),
		DatabaseURL:   env("DATABASE_URL", ""),
		RedisAddr:     env("REDIS_SERVER", "localhost:6379"),
		RedisPassword: env("REDIS_PASSWORD", ""),
		CacheDriver:   strings.ToLower(env("CACHE_DRIVER", "redis")),
		ExportQueue:   env("EXPORT_QUEUE", "export:notes"),
		StorageDriver: strings.ToLower(env("STORAGE_DRIVER", "local")),
		UploadDir:     env("UPLOAD_DIR", "uploads/images"),
		S3Bucket:      env("S3_BUCKET", ""),
		S3Region:      env("S3_REGION", "us-east-1"),
		S3Endpoint:    env("S3_ENDPOINT", ""),
		S3AccessKey:   env("S3_ACCESS_KEY", ""),
		S3SecretKey:   env("S3_SECRET_KEY", ""),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresURL()
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = envSeconds("CACHE_TTL", 3600); err != nil {
		return nil, err
	}
	if cfg.AccessTokenAge, err = envSeconds("ACCESS_TOKEN_AGE", 1800); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = envSeconds("REQUEST_TIMEOUT", 10); err != nil {
		return nil, err
	}
	maxBytes, err := envInt("UPLOAD_MAX_BYTES", 512000)
	if err != nil {
		return nil, err
	}
	cfg.UploadMaxBytes = int64(maxBytes)

	cfg.AccessTokenKey = env("ACCESS_TOKEN_KEY", "")
	cfg.RefreshTokenKey = env("REFRESH_TOKEN_KEY", "")
	if cfg.AccessTokenKey == "" || cfg.RefreshTokenKey == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY must be set")
	}

	if cfg.CacheDriver != "redis" && cfg.CacheDriver != "memory" {
		return nil, fmt.Errorf("unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}

	switch cfg.StorageDriver {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET must be set when STORAGE_DRIVER=s3")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// PublicURL is the base URL clients use to reach this server.
func (c *Config) PublicURL() string {
	return "http://" + c.Addr()
}

func postgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(env("PGUSER", "postgres"), env("PGPASSWORD", "")),
		Host:     env("PGHOST", "localhost") + ":" + env("PGPORT", "5432"),
		Path:     "/" + env("PGDATABASE", "notesapp"),
		RawQuery: "sslmode=" + env("PGSSLMODE", "disable"),
	}
	return u.String()
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, raw, err)
	}
	return n, nil
}

func envSeconds(key string, fallback int) (time.Duration, error) {
	n, err := envInt(key, fallback)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}
