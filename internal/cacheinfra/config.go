// Package cacheinfra provides the cache backends behind the cache.Cache
// contract: an in-process memory backend and a redis-backed one for shared
// deployments. Both support per-entry sliding and absolute expiration.
package cacheinfra

import "time"

// Config holds the settings shared by the cache backends.
type Config struct {
	// DefaultTTL is applied when a policy carries a zero TTL.
	// Must be greater than 0.
	DefaultTTL time.Duration

	// MaxTTL clamps entry lifetimes when set. Zero disables clamping.
	MaxTTL time.Duration

	// CleanupInterval sets how often the memory backend sweeps expired
	// entries. Zero value uses the default interval. Ignored by backends
	// that reap natively (redis).
	CleanupInterval time.Duration

	// Capacity bounds the number of live entries in the memory backend.
	// It is advisory: exceeding it triggers a synchronous sweep of expired
	// entries rather than eviction of live ones. Must be greater than 0.
	Capacity int
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		DefaultTTL:      5 * time.Minute,
		MaxTTL:          0,
		CleanupInterval: time.Minute,
		Capacity:        10000,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.DefaultTTL <= 0 {
		return &ConfigError{Field: "DefaultTTL", Message: "must be greater than 0"}
	}
	if c.MaxTTL < 0 {
		return &ConfigError{Field: "MaxTTL", Message: "must be non-negative"}
	}
	if c.CleanupInterval < 0 {
		return &ConfigError{Field: "CleanupInterval", Message: "must be non-negative"}
	}
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
