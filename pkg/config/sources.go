// pkg/config/sources.go
package config

import (
	"os"
	"strings"
	"time"
)

// StoreAPIConfig holds the paginated store API parameters.
type StoreAPIConfig struct {
	// Endpoint is the per-store details endpoint; the page number is
	// appended as a path segment.
	Endpoint string

	// CountEndpoint returns the total number of stores to page through.
	CountEndpoint string

	// Headers are sent on every request (API key etc.).
	Headers map[string]string

	// RequestTimeout bounds each individual request.
	RequestTimeout time.Duration
}

// LoadStoreAPIConfig loads the store API configuration from environment
// variables. The API key, when set, is sent as x-api-key.
func LoadStoreAPIConfig() *StoreAPIConfig {
	cfg := &StoreAPIConfig{
		Endpoint:       getEnv("STORE_API_ENDPOINT", ""),
		CountEndpoint:  getEnv("STORE_API_COUNT_ENDPOINT", ""),
		Headers:        map[string]string{},
		RequestTimeout: time.Duration(getEnvAsInt("STORE_API_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	if key := os.Getenv("STORE_API_KEY"); key != "" {
		cfg.Headers["x-api-key"] = key
	}

	// Extra headers as comma-separated name=value pairs.
	for _, pair := range strings.Split(getEnv("STORE_API_HEADERS", ""), ",") {
		if name, value, ok := strings.Cut(strings.TrimSpace(pair), "="); ok {
			cfg.Headers[name] = value
		}
	}

	return cfg
}

// S3Config holds object storage parameters.
type S3Config struct {
	Region string
}

// LoadS3Config loads the object storage configuration from environment
// variables. Credentials come from the standard AWS environment/profile
// chain.
func LoadS3Config() *S3Config {
	return &S3Config{
		Region: getEnv("AWS_REGION", "eu-west-1"),
	}
}
