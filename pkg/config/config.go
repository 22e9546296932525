package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	CORS          CORSConfig
	Log           LogConfig
	Queue         QueueConfig
	Notifications NotificationsConfig
	Exports       ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// QueueConfig tunes the aggregated request queue behaviour.
type QueueConfig struct {
	CacheEnabled    bool
	CacheTTL        time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

// NotificationsConfig controls outbound notification delivery.
type NotificationsConfig struct {
	Enabled bool
	Stream  string
	Sender  string
	Async   bool
	Workers int
}

// ExportsConfig governs queue export rendering.
type ExportsConfig struct {
	Enabled    bool
	MaxRows    int
	PDFTitle   string
	ArchiveDir string
	ArchiveTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Queue = QueueConfig{
		CacheEnabled:    v.GetBool("QUEUE_CACHE_ENABLED"),
		CacheTTL:        parseDuration(v.GetString("QUEUE_CACHE_TTL"), 2*time.Minute),
		DefaultPageSize: v.GetInt("QUEUE_DEFAULT_PAGE_SIZE"),
		MaxPageSize:     v.GetInt("QUEUE_MAX_PAGE_SIZE"),
	}

	cfg.Notifications = NotificationsConfig{
		Enabled: v.GetBool("NOTIFICATIONS_ENABLED"),
		Stream:  v.GetString("NOTIFICATIONS_STREAM"),
		Sender:  v.GetString("NOTIFICATIONS_SENDER"),
		Async:   v.GetBool("NOTIFICATIONS_ASYNC"),
		Workers: v.GetInt("NOTIFICATIONS_WORKERS"),
	}

	cfg.Exports = ExportsConfig{
		Enabled:    v.GetBool("EXPORTS_ENABLED"),
		MaxRows:    v.GetInt("EXPORTS_MAX_ROWS"),
		PDFTitle:   v.GetString("EXPORTS_PDF_TITLE"),
		ArchiveDir: v.GetString("EXPORTS_ARCHIVE_DIR"),
		ArchiveTTL: parseDuration(v.GetString("EXPORTS_ARCHIVE_TTL"), 7*24*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "brgy_docs")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "brgy-docs-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("QUEUE_CACHE_ENABLED", false)
	v.SetDefault("QUEUE_CACHE_TTL", "2m")
	v.SetDefault("QUEUE_DEFAULT_PAGE_SIZE", 20)
	v.SetDefault("QUEUE_MAX_PAGE_SIZE", 100)

	v.SetDefault("NOTIFICATIONS_ENABLED", true)
	v.SetDefault("NOTIFICATIONS_STREAM", "brgy:notifications")
	v.SetDefault("NOTIFICATIONS_SENDER", "log")
	v.SetDefault("NOTIFICATIONS_ASYNC", false)
	v.SetDefault("NOTIFICATIONS_WORKERS", 2)

	v.SetDefault("EXPORTS_ENABLED", true)
	v.SetDefault("EXPORTS_MAX_ROWS", 5000)
	v.SetDefault("EXPORTS_PDF_TITLE", "Document Request Queue")
	v.SetDefault("EXPORTS_ARCHIVE_DIR", "")
	v.SetDefault("EXPORTS_ARCHIVE_TTL", "168h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
