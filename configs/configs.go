// Package configs provides application configuration loaded from environment variables.
// A .env file in the working directory is read first when present.
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceFile       = "file"
	SourceClickHouse = "clickhouse"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// ServerPort is the HTTP listen port.
	ServerPort string

	// DebugMode switches gin to debug mode when "True".
	DebugMode string

	// LogLevel is a logrus level name.
	LogLevel string

	// DBDSN is the ClickHouse connection string.
	DBDSN string

	Dataset DatasetConfig
	Theme   ThemeConfig
	Limit   RateLimitConfig

	// Notionals are the offered notional tiers; the first is the default.
	Notionals []string
}

// DatasetConfig selects where the fee snapshot is loaded from.
type DatasetConfig struct {
	// Source is "file" or "clickhouse".
	Source string

	// Path is the JSON dataset for the file source.
	Path string
}

// ThemeConfig holds theme preference settings.
type ThemeConfig struct {
	// Store is "file" or "clickhouse".
	Store string

	// StorePath is the JSON file used by the file store.
	StorePath string

	// StorageKey is the key the preference is stored under.
	StorageKey string

	// Default is used when no preference is stored.
	Default string
}

// RateLimitConfig bounds request throughput on the HTTP API.
type RateLimitConfig struct {
	// RPS is the sustained requests per second. Zero disables limiting.
	RPS float64

	// Burst is the bucket size.
	Burst int
}

// getDatabaseDSN constructs the ClickHouse DSN from environment variables.
func getDatabaseDSN() string {
	dbUser := getEnv("CLICKHOUSE_USER", "default")
	dbPassword := getEnv("CLICKHOUSE_PASSWORD", "")
	dbHost := getEnv("CLICKHOUSE_HOST", "localhost")
	dbPort := getEnv("CLICKHOUSE_TCP_PORT", "9000")
	dbName := getEnv("CLICKHOUSE_DB", "default")

	return fmt.Sprintf(
		"clickhouse://%s:%s@%s:%s/%s?dial_timeout=10s&read_timeout=20s",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

// AppLoad loads all application configuration from environment variables.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // .env is optional

	return &AppConfig{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DebugMode:  getEnv("DEBUGMODE", "False"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DBDSN:      getDatabaseDSN(),
		Dataset: DatasetConfig{
			Source: getEnv("DATASET_SOURCE", SourceFile),
			Path:   getEnv("DATASET_PATH", "data/cleaned_data_large.json"),
		},
		Theme: ThemeConfig{
			Store:      getEnv("THEME_STORE", SourceFile),
			StorePath:  getEnv("THEME_STORE_PATH", "data/preferences.json"),
			StorageKey: getEnv("THEME_STORAGE_KEY", "theme"),
			Default:    getEnv("THEME_DEFAULT", "system"),
		},
		Limit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 50),
			Burst: getEnvInt("RATE_LIMIT_BURST", 100),
		},
		Notionals: getEnvList("NOTIONALS", []string{"100", "500", "1000"}),
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma-separated variable, dropping blank items.
func getEnvList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
