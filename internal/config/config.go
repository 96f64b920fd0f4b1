package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers for the record service
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration
type Config struct {
	// gRPC journal front
	GRPCPort int
	APIToken string

	// Record service
	HTTPPort           int
	RecordStoreURL     string
	RecordStoreTimeout time.Duration
	StoreDriver        string
	DBConnStr          string
	SQLitePath         string

	// Cron schedule for refreshing cached trade stores; empty disables it
	RefreshSchedule string

	LogLevel  string
	LogPretty bool
	DevMode   bool
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GRPCPort:           getEnvAsInt("GRPC_PORT", 8080),
		APIToken:           getEnv("API_TOKEN", "dev-token"),
		HTTPPort:           getEnvAsInt("HTTP_PORT", 8081),
		RecordStoreURL:     getEnv("RECORD_STORE_URL", "http://localhost:8081"),
		RecordStoreTimeout: getEnvAsDuration("RECORD_STORE_TIMEOUT", 30*time.Second),
		StoreDriver:        getEnv("STORE_DRIVER", DriverSQLite),
		DBConnStr:          postgresConnString(),
		SQLitePath:         getEnv("SQLITE_PATH", "./data/trades.db"),
		RefreshSchedule:    getEnv("REFRESH_SCHEDULE", "@every 5m"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnvAsBool("LOG_PRETTY", false),
		DevMode:            getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("API_TOKEN is required")
	}
	if c.RecordStoreURL == "" {
		return fmt.Errorf("RECORD_STORE_URL is required")
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBConnStr == "" {
			return fmt.Errorf("DB_CONN_STR is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// postgresConnString returns DB_CONN_STR, or builds one from the individual DB_* vars
func postgresConnString() string {
	if conn := os.Getenv("DB_CONN_STR"); conn != "" {
		return conn
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "tradejournal"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
