package config

import "time"

// DefaultConfig returns a default configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			TTL: time.Minute,
		},
		History: HistoryConfig{},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
