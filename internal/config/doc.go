// Package config loads the service settings from defaults, an optional config
// file, SCORING_* environment variables and command-line flags, and validates
// the result before any component is built.
package config
