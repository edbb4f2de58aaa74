package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Environment variables honored as overrides.
const (
	EnvServerURL = "AGENTWEAVE_SERVER_URL"
	EnvLogLevel  = "AGENTWEAVE_LOG_LEVEL"
)

// Loader handles loading configuration from a file with environment overrides
type Loader struct {
	fs        afero.Fs
	validator *Validator
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		fs:        afero.NewOsFs(),
		validator: NewValidator(),
	}
}

// NewLoaderWithFs creates a loader reading from the given filesystem
func NewLoaderWithFs(fs afero.Fs) *Loader {
	return &Loader{
		fs:        fs,
		validator: NewValidator(),
	}
}

// Load reads the config file at path, falling back to defaults when the file
// doesn't exist, then applies environment overrides and validates.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := afero.ReadFile(l.fs, path)
	switch {
	case err == nil:
		var loaded Config
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		merge(config, &loaded)
	case os.IsNotExist(err):
		// Defaults apply
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	l.applyEnvironmentOverrides(config)

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// merge overlays non-zero fields of src onto dst
func merge(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.Server.URL != "" {
		dst.Server.URL = src.Server.URL
	}
	if src.Server.Timeout != 0 {
		dst.Server.Timeout = src.Server.Timeout
	}
	if src.Cache.TTL != 0 {
		dst.Cache.TTL = src.Cache.TTL
	}
	dst.History.Disabled = dst.History.Disabled || src.History.Disabled
	if src.History.Path != "" {
		dst.History.Path = src.History.Path
	}
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
}

// applyEnvironmentOverrides applies environment variable overrides
func (l *Loader) applyEnvironmentOverrides(config *Config) {
	if url := os.Getenv(EnvServerURL); url != "" {
		config.Server.URL = url
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		config.Logging.Level = level
	}
}

// HistoryPath resolves the conversation history database location.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return DefaultHistoryPath()
}

// Save writes the configuration as indented JSON.
func (l *Loader) Save(path string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return afero.WriteFile(l.fs, path, data, 0644)
}

// ClientTimeout returns the configured request timeout with a floor of zero.
func (c *Config) ClientTimeout() time.Duration {
	if c.Server.Timeout < 0 {
		return 0
	}
	return c.Server.Timeout
}
