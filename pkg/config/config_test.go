package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPostgresConfig(t *testing.T) {
	t.Setenv("SOURCE_DB_USER", "etl")
	t.Setenv("SOURCE_DB_PASSWORD", "secret")
	t.Setenv("SOURCE_DB_NAME", "sales")
	t.Setenv("SOURCE_DB_PORT", "5433")

	cfg, err := LoadPostgresConfig("SOURCE_DB")
	require.NoError(t, err)

	assert.Equal(t, "etl", cfg.User)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Contains(t, cfg.ConnectionString(), "dbname=sales")
	assert.Contains(t, cfg.ConnectionString(), "sslmode=disable")
}

func TestLoadPostgresConfigMissingUser(t *testing.T) {
	os.Unsetenv("TARGET_DB_USER")
	_, err := LoadPostgresConfig("TARGET_DB")
	assert.Error(t, err)
}

func TestApplyCredsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db_creds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  host: rds.example.com
  port: 5439
  password: from-file
target:
  database: sales_data
`), 0o600))

	source := &PostgresConfig{Host: "localhost", Port: 5432, User: "etl", Password: "env", Database: "src"}
	target := &PostgresConfig{Host: "localhost", Port: 5432, User: "etl", Password: "env", Database: "dst"}

	require.NoError(t, ApplyCredsFile(path, source, target))

	assert.Equal(t, "rds.example.com", source.Host)
	assert.Equal(t, 5439, source.Port)
	assert.Equal(t, "from-file", source.Password)
	assert.Equal(t, "etl", source.User, "fields absent from the file keep their env values")
	assert.Equal(t, "src", source.Database)

	assert.Equal(t, "sales_data", target.Database)
	assert.Equal(t, "localhost", target.Host)
}

func TestApplyCredsFileMissing(t *testing.T) {
	err := ApplyCredsFile(filepath.Join(t.TempDir(), "absent.yaml"), &PostgresConfig{}, &PostgresConfig{})
	assert.Error(t, err)
}
