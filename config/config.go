// Package config reads runtime settings from the environment, after .env has
// been loaded, plus an optional YAML file of dashboard constants.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"broadcastdash/api/presenter"
)

// Dataset sources.
const (
	SourceCSV        = "csv"
	SourceClickHouse = "clickhouse"
	SourcePostgres   = "postgres"
)

type Config struct {
	Port           string
	GinMode        string
	FrontendOrigin string

	DatasetSource string
	DatasetPath   string
	SessionsTable string

	ClickHouse  ClickHouseConfig
	DatabaseURL string

	FetchURL     string
	FetchTimeout time.Duration

	SettingsFile string
	Dashboard    presenter.Settings
}

type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		FrontendOrigin: getEnv("FE_ORIGIN", "http://localhost:3000"),

		DatasetSource: strings.ToLower(getEnv("DATASET_SOURCE", SourceCSV)),
		DatasetPath:   getEnv("DATASET_PATH", "streaming_data.csv"),
		SessionsTable: getEnv("SESSIONS_TABLE", "streaming_sessions"),

		ClickHouse: ClickHouseConfig{
			Host:     getEnv("CLICKHOUSE_HOST", ""),
			Port:     getEnvInt("CLICKHOUSE_NATIVE_PORT", 9000),
			Database: getEnv("CLICKHOUSE_DB_NAME", ""),
			Username: getEnv("CLICKHOUSE_USERNAME", "default"),
			Password: getEnv("CLICKHOUSE_PASSWORD", ""),
		},
		DatabaseURL: getEnv("DATABASE_URL", ""),

		FetchURL:     getEnv("FETCH_URL", "http://127.0.0.1:5000/api/data"),
		SettingsFile: getEnv("DASHBOARD_SETTINGS_FILE", ""),
		Dashboard:    presenter.DefaultSettings(),
	}

	timeout, err := getEnvDuration("FETCH_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = timeout

	if cfg.SettingsFile != "" {
		settings, err := LoadSettings(cfg.SettingsFile)
		if err != nil {
			return nil, err
		}
		cfg.Dashboard = settings
	}
	if os.Getenv("DASHBOARD_DENSE_BUCKETS") != "" {
		cfg.Dashboard.DenseBuckets = getEnvBool("DASHBOARD_DENSE_BUCKETS", false)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown GIN_MODE %q", c.GinMode)
	}

	switch c.DatasetSource {
	case SourceCSV:
		if c.DatasetPath == "" {
			return fmt.Errorf("DATASET_PATH must be set for the csv source")
		}
	case SourceClickHouse:
		if c.ClickHouse.Host == "" || c.ClickHouse.Database == "" {
			return fmt.Errorf("CLICKHOUSE_HOST and CLICKHOUSE_DB_NAME must be set for the clickhouse source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for the postgres source")
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q", c.DatasetSource)
	}
	return nil
}

// LoadSettings reads dashboard constants from a YAML file. Keys left out
// keep their defaults.
func LoadSettings(path string) (presenter.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return presenter.Settings{}, fmt.Errorf("reading settings file: %w", err)
	}
	settings := presenter.DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return presenter.Settings{}, fmt.Errorf("parsing settings file: %w", err)
	}
	return settings.Normalize(), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
