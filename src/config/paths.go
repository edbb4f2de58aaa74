package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultConfigPath returns the default config file path using XDG base
// directories.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "agentweave", "config.json")
}

// DefaultHistoryPath returns the default conversation history database path.
// History is runtime state, so it lives under XDG_STATE_HOME.
func DefaultHistoryPath() string {
	return filepath.Join(xdg.StateHome, "agentweave", "history.db")
}

// DefaultCachePath returns the default cache directory path
func DefaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "agentweave")
}
