package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"chai-app-go/pkg/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
)

type Config struct {
	HTTPPort        string
	Env             string
	CORSOrigins     []string
	CatalogCacheTTL time.Duration
	RateLimit       RateLimitConfig
	DB              DBConfig
	Media           MediaConfig
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MediaConfig struct {
	Backend string
	Root    string
	URL     string
	S3      S3Config
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PresignTTL      time.Duration
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:        getEnv("HTTP_PORT", "8000"),
		Env:             getEnv("ENV", "development"),
		CORSOrigins:     getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:8000"}),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 30*time.Second),
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("API_RATE_LIMIT_REQUESTS", 60),
			Window:   getEnvDuration("API_RATE_LIMIT_WINDOW", time.Minute),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "chai"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "chai.sqlite3"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Media: MediaConfig{
			Backend: strings.ToLower(getEnv("MEDIA_BACKEND", MediaBackendLocal)),
			Root:    getEnv("MEDIA_ROOT", "media"),
			URL:     getEnv("MEDIA_URL", "/media/"),
			S3: S3Config{
				Bucket:          getEnv("S3_BUCKET", ""),
				Region:          getEnv("S3_REGION", "auto"),
				Endpoint:        getEnv("S3_ENDPOINT", ""),
				AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
				PresignTTL:      getEnvDuration("S3_PRESIGN_TTL", 15*time.Minute),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}

	switch c.Media.Backend {
	case MediaBackendLocal:
	case MediaBackendS3:
		if c.Media.S3.Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET is required when MEDIA_BACKEND=s3")
		}
	default:
		return fmt.Errorf("config: unsupported MEDIA_BACKEND %q", c.Media.Backend)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
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

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == DriverSQLite {
		return "file:" + c.SQLitePath + "?_foreign_keys=on"
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
