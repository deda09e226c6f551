// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// Database connections
	SourceDB *PostgresConfig
	TargetDB *PostgresConfig

	// External sources
	StoreAPI *StoreAPIConfig
	S3       *S3Config

	// Load settings
	LoadBatchSize int

	// Cleaning settings
	StripStaffNumbers bool
	SnapshotYear      int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables. A creds
// file named by DB_CREDS_FILE, when present, overrides the database
// environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		LoadBatchSize:     getEnvAsInt("LOAD_BATCH_SIZE", 500),
		StripStaffNumbers: getEnvAsBool("STRIP_STAFF_NUMBERS", false),
		SnapshotYear:      getEnvAsInt("SNAPSHOT_YEAR", 0),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	sourceCfg, err := LoadPostgresConfig("SOURCE_DB")
	if err != nil {
		return nil, errors.New("failed to load source database configuration: " + err.Error())
	}
	cfg.SourceDB = sourceCfg

	targetCfg, err := LoadPostgresConfig("TARGET_DB")
	if err != nil {
		return nil, errors.New("failed to load target database configuration: " + err.Error())
	}
	cfg.TargetDB = targetCfg

	if credsPath := getEnv("DB_CREDS_FILE", ""); credsPath != "" {
		if err := ApplyCredsFile(credsPath, cfg.SourceDB, cfg.TargetDB); err != nil {
			return nil, errors.New("failed to load database creds file: " + err.Error())
		}
	}

	cfg.StoreAPI = LoadStoreAPIConfig()
	cfg.S3 = LoadS3Config()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.SourceDB == nil {
		return errors.New("source database configuration is required")
	}

	if c.TargetDB == nil {
		return errors.New("target database configuration is required")
	}

	if c.LoadBatchSize <= 0 {
		return errors.New("load batch size must be positive")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
