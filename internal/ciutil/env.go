package ciutil

import (
	"log/slog"
	"os"
	"strings"
)

// Common environment variable names used across the codebase.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvTravisCI      = "TRAVIS"
	EnvCircleCI      = "CIRCLECI"

	// Redis address for integration tests
	EnvTestRedisAddr = "SCORING_TEST_REDIS_ADDR" // Preferred standardized name
	EnvRedisAddr     = "REDIS_ADDR"

	// DefaultRedisAddr is used when no address is configured.
	DefaultRedisAddr = "localhost:6379"
)

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different CI providers.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvTravisCI) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty environment variable
// from the provided list. If no environment variables are set, it returns the defaultValue.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			// Log a deprecation warning if a non-primary environment variable is used
			if i > 0 && logger != nil {
				logger.Warn("Using legacy environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0],
					"value", MaskSensitiveValue(val),
				)
			}
			return val
		}
	}
	return defaultValue
}

// GetTestRedisAddr returns the Redis address integration tests connect to.
func GetTestRedisAddr(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvTestRedisAddr, EnvRedisAddr}, DefaultRedisAddr, logger)
}

// MaskSensitiveValue masks the password of a redis:// URL so it can be logged.
func MaskSensitiveValue(value string) string {
	for _, scheme := range []string{"redis://", "rediss://"} {
		if !strings.HasPrefix(value, scheme) {
			continue
		}
		rest := strings.TrimPrefix(value, scheme)
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return value
		}
		userinfo, host := rest[:at], rest[at+1:]
		if user, _, ok := strings.Cut(userinfo, ":"); ok {
			return scheme + user + ":****@" + host
		}
		return scheme + "****@" + host
	}
	return value
}
