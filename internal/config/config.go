package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"   validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFile         string        `mapstructure:"log_file"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// RateLimit is the sustained number of requests per second accepted
	// across all clients. Zero disables rate limiting.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst int     `mapstructure:"rate_burst" validate:"gte=0"`
}

// AuthConfig holds the credentials the token digest is computed from.
type AuthConfig struct {
	AdminLogin string `mapstructure:"admin_login" validate:"required"`
	AdminSalt  string `mapstructure:"admin_salt"  validate:"required"`
	Salt       string `mapstructure:"salt"        validate:"required"`
}

// StoreConfig configures the remote key-value store and the retry policy
// applied to every call made through the store client.
type StoreConfig struct {
	// Driver selects the backend: "redis" or the process-local "memory".
	Driver string `mapstructure:"driver" validate:"required,oneof=redis memory"`

	// Addr is host:port or a redis:// URL.
	Addr      string `mapstructure:"addr"       validate:"required,hostname_port|url"`
	DB        int    `mapstructure:"db"         validate:"gte=0"`
	KeyPrefix string `mapstructure:"key_prefix"`

	// Timeout bounds a single attempt.
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Attempts is the total number of tries, the first one included.
	Attempts int `mapstructure:"attempts" validate:"min=1"`

	// Backoff is the base delay; attempt n waits Backoff * 2^n.
	Backoff time.Duration `mapstructure:"backoff" validate:"gte=0"`

	// BreakerFailures is the number of consecutive failed attempts that
	// opens the circuit breaker. Zero disables the breaker.
	BreakerFailures int `mapstructure:"breaker_failures" validate:"gte=0"`

	// BreakerCooldown is how long the breaker stays open before a probe.
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown" validate:"gte=0"`
}
