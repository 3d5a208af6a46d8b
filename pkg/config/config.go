package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// StoreConfig holds Term Store configuration. The REST backend talks to the
// hosted Supabase project; the postgres backend connects directly to a
// self-hosted database.
type StoreConfig struct {
	Backend string // "rest" or "postgres"

	// REST backend
	URL     string
	AnonKey string
	Timeout time.Duration

	// Postgres backend
	DB DBConfig
}

// DBConfig holds database configuration for the postgres backend
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
	// Origin used when building absolute links in snapshots if the request
	// itself carries no usable Host header (e.g. behind some proxies).
	PublicOrigin string
	StaticDir    string
}

// JWTConfig holds JWT configuration for the moderator surface
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// AssistantConfig holds Gemini assistant configuration
type AssistantConfig struct {
	APIKey string
	Model  string
}

// SnapshotConfig holds cache policy for the prerendered surfaces
type SnapshotConfig struct {
	// Snapshot documents are cached briefly so a rejected term does not keep
	// circulating after moderation.
	HTMLMaxAge  time.Duration
	ImageMaxAge time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	Store       StoreConfig
	Server      ServerConfig
	JWT         JWTConfig
	Assistant   AssistantConfig
	Snapshot    SnapshotConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: "vine-lingo",
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "rest"),
			// Both hosting setups are in the wild, so accept either name.
			URL:     getEnvVariants("", "SUPABASE_URL", "VITE_SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"),
			AnonKey: getEnvVariants("", "SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"),
			Timeout: getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),
			DB: DBConfig{
				Host:            getEnv("DB_HOST", "localhost"),
				Port:            getEnv("DB_PORT", "5432"),
				User:            getEnv("DB_USER", "postgres"),
				Password:        getEnv("DB_PASSWORD", "password"),
				DBName:          getEnv("DB_NAME", "vinelingo"),
				SSLMode:         getEnv("DB_SSL_MODE", "disable"),
				MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
				MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
				ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
				LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
			},
		},
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Env:          getEnv("APP_ENV", "development"),
			PublicOrigin: getEnv("PUBLIC_ORIGIN", ""),
			StaticDir:    getEnv("STATIC_DIR", "web"),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Assistant: AssistantConfig{
			APIKey: getEnvVariants("", "GEMINI_API_KEY", "API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		},
		Snapshot: SnapshotConfig{
			HTMLMaxAge:  getEnvAsDuration("SNAPSHOT_HTML_MAX_AGE", 5*time.Minute),
			ImageMaxAge: getEnvAsDuration("SNAPSHOT_IMAGE_MAX_AGE", 1*time.Hour),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "vinelingo"),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("store_backend", c.Store.Backend),
		zap.String("server_port", c.Server.Port),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvVariants returns the first non-empty value among several recognized
// names for the same setting.
func getEnvVariants(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if value, exists := os.LookupEnv(key); exists && value != "" {
			return value
		}
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
