// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers for the local key/value store
const (
	StorageFile     = "file"
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Backend API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Local storage
	StorageDriver string
	StoragePath   string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresURI string

	// Platform dark mode, used when the theme preference is system
	SystemDarkMode bool

	// Price drop notifications; an empty URL only logs them
	NotifyWebhookURL string
	NotifyToken      string

	// Watcher
	MetricsPort       string
	AlertPollInterval time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		APIBaseURL:  strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000/api"), "/"),
		HTTPTimeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT", 30)) * time.Second,

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
		StoragePath:   getEnv("STORAGE_PATH", defaultStoragePath()),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "skyfare"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		SystemDarkMode: getEnvAsBool("SYSTEM_DARK_MODE", false),

		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		NotifyToken:      getEnv("NOTIFY_TOKEN", ""),

		MetricsPort:       getEnv("METRICS_PORT", "9090"),
		AlertPollInterval: time.Duration(getEnvAsInt("ALERT_POLL_INTERVAL", 300)) * time.Second,
		ReadTimeout:       time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:      time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the selected storage driver has what it needs
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must be set")
	}
	switch c.StorageDriver {
	case StorageFile:
		if c.StoragePath == "" {
			return fmt.Errorf("STORAGE_PATH must be set for the file driver")
		}
	case StorageMongo:
		if c.MongoURI == "" || c.MongoDB == "" {
			return fmt.Errorf("MONGODB_DSN and MONGO_DB must be set for the mongo driver")
		}
	case StoragePostgres:
		if c.PostgresURI == "" {
			return fmt.Errorf("POSTGRES_DSN must be set for the postgres driver")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.AlertPollInterval <= 0 {
		return fmt.Errorf("ALERT_POLL_INTERVAL must be positive")
	}
	return nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".skyfare", "storage.json")
	}
	return filepath.Join(dir, "skyfare", "storage.json")
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
