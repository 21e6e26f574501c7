// Package ciutil provides utilities for CI and environment-specific functionality.
//
// It detects whether tests run under a CI provider and resolves the address
// of the Redis server used by integration tests, so that test packages do not
// read environment variables on their own. MaskSensitiveValue hides the
// password of a redis:// address before it is logged.
package ciutil
