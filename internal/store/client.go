package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scoring-api/internal/config"
	"github.com/phrazzld/scoring-api/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"
)

// Operation names used in errors, logs and metrics.
const (
	OpCacheGet = "cache_get"
	OpCacheSet = "cache_set"
	OpGet      = "get"
)

var (
	storeRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_store_retries_total",
			Help: "Total number of store calls retried after a retryable failure",
		},
		[]string{"operation"},
	)

	storeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_store_failures_total",
			Help: "Total number of store calls that failed after all attempts",
		},
		[]string{"operation", "retryable"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scoring_store_breaker_open",
			Help: "1 while the named store circuit breaker is open, 0 otherwise",
		},
		[]string{"breaker"},
	)
)

// Backend is the remote key-value store the Client wraps.
// Implementations classify failures with ErrConnRefused and ErrTimeout.
type Backend interface {
	// Get returns the value stored under key; ok is false when it is missing.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Close releases the backend connection.
	Close() error
}

// Cache is the best-effort view of the store used for memoization.
// Callers treat every error as "not cached".
type Cache interface {
	CacheGet(ctx context.Context, key string) (string, bool, error)
	CacheSet(ctx context.Context, key, value string, ttl time.Duration) error
}

// Reader is the view of the store used for data the caller requires.
type Reader interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// RetryPolicy bounds how often a store call is attempted.
type RetryPolicy struct {
	// Attempts is the total number of tries, the first one included.
	Attempts int

	// Backoff is the base delay; the wait after attempt n is Backoff * 2^n.
	Backoff time.Duration
}

// DefaultRetryPolicy is three attempts with a one second base delay.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: time.Second}

// Client wraps a Backend and retries calls that fail with ErrConnRefused.
// Any other failure is returned after the first attempt.
type Client struct {
	backend Backend
	policy  RetryPolicy
	logger  *slog.Logger
	breaker *gobreaker.CircuitBreaker
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// DefaultBreakerName labels the breaker of the service's store client.
const DefaultBreakerName = "store"

// WithBreaker guards every attempt with a circuit breaker that opens after
// failures consecutive failed attempts and lets a probe through after
// cooldown. While open, calls fail with ErrCircuitOpen without reaching the
// backend. name labels the breaker's state gauge and log lines; clients
// sharing a name share the gauge series.
func WithBreaker(name string, failures uint32, cooldown time.Duration) ClientOption {
	return func(c *Client) {
		breakerState.WithLabelValues(name).Set(0)
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				if to == gobreaker.StateOpen {
					breakerState.WithLabelValues(name).Set(1)
				} else {
					breakerState.WithLabelValues(name).Set(0)
				}
				c.logger.Warn("store circuit breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String())
			},
		})
	}
}

// Ensure Client implements Cache and Reader
var (
	_ Cache  = (*Client)(nil)
	_ Reader = (*Client)(nil)
)

// NewClient creates a retrying client around backend.
func NewClient(backend Backend, policy RetryPolicy, logger *slog.Logger, opts ...ClientOption) *Client {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		backend: backend,
		policy:  policy,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PolicyFromConfig extracts the retry policy from the store configuration.
func PolicyFromConfig(cfg config.StoreConfig) RetryPolicy {
	return RetryPolicy{Attempts: cfg.Attempts, Backoff: cfg.Backoff}
}

// OptionsFromConfig returns the client options enabled by the store
// configuration.
func OptionsFromConfig(cfg config.StoreConfig) []ClientOption {
	var opts []ClientOption
	if cfg.BreakerFailures > 0 {
		opts = append(opts, WithBreaker(DefaultBreakerName, uint32(cfg.BreakerFailures), cfg.BreakerCooldown))
	}
	return opts
}

// CacheGet reads a memoized value.
func (c *Client) CacheGet(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := c.do(ctx, OpCacheGet, key, func(ctx context.Context) error {
		var err error
		value, ok, err = c.backend.Get(ctx, key)
		return err
	})
	return value, ok, err
}

// CacheSet memoizes value under key for ttl.
func (c *Client) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.do(ctx, OpCacheSet, key, func(ctx context.Context) error {
		return c.backend.Set(ctx, key, value, ttl)
	})
}

// Get reads a value the caller depends on.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := c.do(ctx, OpGet, key, func(ctx context.Context) error {
		var err error
		value, ok, err = c.backend.Get(ctx, key)
		return err
	})
	return value, ok, err
}

// Close releases the backend.
func (c *Client) Close() error {
	return c.backend.Close()
}

// do runs fn under the retry policy. The returned error is a *StoreError
// wrapping the last failure.
func (c *Client) do(ctx context.Context, op, key string, fn func(context.Context) error) error {
	log := logger.FromContextOrDefault(ctx, c.logger)
	attempts := 0

	err := retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		attempts++
		err := c.guard(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempts < c.policy.Attempts {
			storeRetries.WithLabelValues(op).Inc()
			log.Warn("retrying store operation",
				"operation", op,
				"attempt", attempts,
				"max_attempts", c.policy.Attempts,
				"error", err)
		}
		return retry.RetryableError(err)
	})
	if err == nil {
		return nil
	}

	retryable := "false"
	if IsRetryable(err) {
		retryable = "true"
	}
	storeFailures.WithLabelValues(op, retryable).Inc()

	return &StoreError{Operation: op, Key: key, Attempts: attempts, Err: err}
}

// guard runs fn through the circuit breaker when one is configured.
func (c *Client) guard(ctx context.Context, fn func(context.Context) error) error {
	if c.breaker == nil {
		return fn(ctx)
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return err
}

// backoff waits Backoff * 2^n after the n-th failed attempt and stops once
// the attempt budget is spent.
func (c *Client) backoff() retry.Backoff {
	attempt := uint(0)
	doubling := retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return c.policy.Backoff << attempt, false
	})
	return retry.WithMaxRetries(uint64(c.policy.Attempts-1), doubling)
}
