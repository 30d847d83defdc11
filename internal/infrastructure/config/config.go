package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the dashboard client.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig contains settings for the smart-home REST boundary.
type APIConfig struct {
	// BaseURL is the root of the REST API, e.g. "http://localhost:8000".
	// All endpoint paths (/auth/login, /homes, /rooms, ...) are relative to it.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout in seconds. A hung request past this
	// deadline fails the call; there is no automatic retry.
	Timeout int `yaml:"timeout"`
}

// StorageConfig contains settings for the local state database.
// This holds the auth token, cached user record and selected-home identifier
// so a restart restores the previous session.
type StorageConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	Output string `yaml:"output"` // stdout, stderr
}

// Load reads configuration from the specified YAML file.
//
// The loading order is:
//  1. Start with sensible defaults
//  2. Overlay values from the YAML file
//  3. Apply environment variable overrides
//  4. Validate the result
//
// Returns the validated configuration or an error describing what failed.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 15,
		},
		Storage: StorageConfig{
			Path:        "./data/iotdash.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: IOTDASH_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IOTDASH_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("IOTDASH_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("IOTDASH_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.API.BaseURL == "" {
		errs = append(errs, "api.base_url is required")
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "api.base_url must be an absolute URL (e.g. http://localhost:8000)")
	}

	if c.API.Timeout < 1 {
		errs = append(errs, "api.timeout must be at least 1 second")
	}

	if c.Storage.Path == "" {
		errs = append(errs, "storage.path is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetRequestTimeout returns the API request timeout as a Duration.
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}
