// Package config loads runtime settings from .env files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	StoreDriver string
	StoreTable  string
	SQLitePath  string
	DB          DatabaseConfig

	Redis      RedisConfig
	CacheTTL   time.Duration
	RateLimit  int
	RateWindow time.Duration

	APIToken        string
	AuditSchedule   string
	WorkerQueueSize int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN builds the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Load reads the first .env file found and then the environment. Values
// already present in the environment win over the file.
func Load() (*Config, error) {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		Port:        getEnvString("PORT", "8080"),
		LogLevel:    getEnvString("LOG_LEVEL", "info"),
		LogFormat:   getEnvString("LOG_FORMAT", "text"),
		StoreDriver: getEnvString("STORE_DRIVER", DriverSQLite),
		StoreTable:  getEnvString("STORE_TABLE", "kv_store"),
		SQLitePath:  getEnvString("SQLITE_PATH", defaultSQLitePath()),
		DB: DatabaseConfig{
			Host:     getEnvString("DB_HOST", "localhost"),
			Port:     getEnvString("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnvString("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		CacheTTL:        getEnvDuration("CACHE_TTL", 30*time.Minute),
		RateLimit:       getEnvInt("RATE_LIMIT", 100),
		RateWindow:      getEnvDuration("RATE_WINDOW", time.Minute),
		APIToken:        os.Getenv("API_TOKEN"),
		AuditSchedule:   getEnvString("AUDIT_SCHEDULE", "5 0 * * *"),
		WorkerQueueSize: getEnvInt("WORKER_QUEUE_SIZE", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DB.User == "" || c.DB.Name == "" {
			return fmt.Errorf("config: DB_USER and DB_NAME are required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q (sqlite, postgres or memory)", c.StoreDriver)
	}

	if c.WorkerQueueSize < 1 {
		return fmt.Errorf("config: WORKER_QUEUE_SIZE must be positive")
	}
	return nil
}

func envPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "kanso", ".env"))
	}
	return paths
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kanso.db"
	}
	return filepath.Join(home, ".config", "kanso", "kanso.db")
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("30s", "5m") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
