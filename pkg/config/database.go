// pkg/config/database.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PostgresConfig holds PostgreSQL connection parameters
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// LoadPostgresConfig loads PostgreSQL configuration from environment
// variables under the given prefix (e.g. SOURCE_DB, TARGET_DB).
func LoadPostgresConfig(prefix string) (*PostgresConfig, error) {
	user := os.Getenv(prefix + "_USER")
	if user == "" {
		return nil, errors.New(prefix + "_USER environment variable is required")
	}

	password := os.Getenv(prefix + "_PASSWORD")
	if password == "" {
		return nil, errors.New(prefix + "_PASSWORD environment variable is required")
	}

	database := os.Getenv(prefix + "_NAME")
	if database == "" {
		return nil, errors.New(prefix + "_NAME environment variable is required")
	}

	cfg := &PostgresConfig{
		Host:     getEnv(prefix+"_HOST", "localhost"),
		Port:     getEnvAsInt(prefix+"_PORT", 5432),
		User:     user,
		Password: password,
		Database: database,
		SSLMode:  getEnv(prefix+"_SSLMODE", "disable"),

		MaxOpenConns:     getEnvAsInt(prefix+"_MAX_OPEN_CONNS", 10),
		MaxIdleConns:     getEnvAsInt(prefix+"_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:  time.Duration(getEnvAsInt(prefix+"_CONN_MAX_LIFETIME_SECONDS", 1800)) * time.Second,
		ConnMaxIdleTime:  time.Duration(getEnvAsInt(prefix+"_CONN_MAX_IDLE_TIME_SECONDS", 600)) * time.Second,
		StatementTimeout: time.Duration(getEnvAsInt(prefix+"_STATEMENT_TIMEOUT_SECONDS", 300)) * time.Second,
	}

	return cfg, nil
}

// ConnectionString returns a formatted PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}

// credsFile mirrors the db_creds.yaml layout operators already keep for
// this pipeline. Fields left empty keep their environment values.
type credsFile struct {
	Source credsEntry `yaml:"source"`
	Target credsEntry `yaml:"target"`
}

type credsEntry struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// ApplyCredsFile overlays connection parameters from a YAML creds file
// onto the source and target configurations.
func ApplyCredsFile(path string, source, target *PostgresConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read creds file: %w", err)
	}

	var creds credsFile
	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return fmt.Errorf("failed to parse creds file: %w", err)
	}

	creds.Source.applyTo(source)
	creds.Target.applyTo(target)
	return nil
}

func (e credsEntry) applyTo(cfg *PostgresConfig) {
	if cfg == nil {
		return
	}
	if e.Host != "" {
		cfg.Host = e.Host
	}
	if e.Port != 0 {
		cfg.Port = e.Port
	}
	if e.User != "" {
		cfg.User = e.User
	}
	if e.Password != "" {
		cfg.Password = e.Password
	}
	if e.Database != "" {
		cfg.Database = e.Database
	}
}
