// Package redis provides the Redis implementation of the store.Backend
// interface defined in the internal/store package. It handles connection
// settings, key prefixing and the mapping of Redis and network failures onto
// the store's retryable and fatal failure classes.
package redis
