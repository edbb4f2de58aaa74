package config

import "time"

// Config represents the complete configuration for the agentweave CLI
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// Server configuration for the agent backend
	Server ServerConfig `json:"server"`

	// Cache configuration for the read-through data layer
	Cache CacheConfig `json:"cache,omitempty"`

	// History configuration for local conversation storage
	History HistoryConfig `json:"history,omitempty"`

	// Logging configuration
	Logging LoggingConfig `json:"logging,omitempty"`
}

// ServerConfig defines how to reach the agent backend
type ServerConfig struct {
	// URL is the backend base URL
	URL string `json:"url" validate:"required,url"`

	// Timeout for HTTP requests
	Timeout time.Duration `json:"timeout" validate:"min=0"`
}

// CacheConfig defines the read cache behavior
type CacheConfig struct {
	// TTL after which cached reads expire; zero means no expiry
	TTL time.Duration `json:"ttl" validate:"min=0"`
}

// HistoryConfig defines local conversation history storage
type HistoryConfig struct {
	// Disabled turns off local conversation recording
	Disabled bool `json:"disabled,omitempty"`

	// Path to the history database; empty means the default XDG state path
	Path string `json:"path,omitempty"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`

	// Format is the output format (text, json)
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text json"`
}
