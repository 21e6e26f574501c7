package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "SCORING"

// flagBindings maps command-line flag names to configuration keys.
var flagBindings = map[string]string{
	"port":      "server.port",
	"log":       "server.log_file",
	"log-level": "server.log_level",
}

// NewFlagSet returns the command-line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.IntP("port", "p", 8080, "port to listen on")
	fs.StringP("log", "l", "", "log file path (stdout when empty)")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.StringP("config", "c", "", "path to a YAML config file")
	return fs
}

// Load builds the configuration from defaults, an optional config file,
// SCORING_* environment variables and command-line flags.
// Flags that were explicitly set win over environment variables, which win
// over the config file. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if flags != nil {
		if path, _ := flags.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagBindings {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_file", "")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 20)

	v.SetDefault("auth.admin_login", "admin")
	v.SetDefault("auth.admin_salt", "42")
	v.SetDefault("auth.salt", "Otus")

	v.SetDefault("store.driver", "redis")
	v.SetDefault("store.addr", "localhost:6379")
	v.SetDefault("store.db", 0)
	v.SetDefault("store.key_prefix", "")
	v.SetDefault("store.timeout", "5s")
	v.SetDefault("store.attempts", 3)
	v.SetDefault("store.backoff", "1s")
	v.SetDefault("store.breaker_failures", 10)
	v.SetDefault("store.breaker_cooldown", "30s")
}
