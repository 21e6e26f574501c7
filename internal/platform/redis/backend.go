package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/phrazzld/scoring-api/internal/config"
	"github.com/phrazzld/scoring-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// Backend implements store.Backend on top of a Redis client.
type Backend struct {
	client    *redis.Client
	keyPrefix string
	timeout   time.Duration
}

// Ensure Backend implements store.Backend
var _ store.Backend = (*Backend)(nil)

// New creates a Backend for the configured Redis server. cfg.Addr is either
// host:port or a redis:// (rediss://) URL carrying credentials and the
// database number; cfg.DB applies to the host:port form only. The connection
// is established lazily; use Ping to check availability.
//
// The go-redis client's own retries are disabled because store.Client owns
// the retry policy.
func New(cfg config.StoreConfig) (*Backend, error) {
	opts := &redis.Options{Addr: cfg.Addr, DB: cfg.DB}
	if strings.Contains(cfg.Addr, "://") {
		parsed, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	}
	opts.DialTimeout = cfg.Timeout
	opts.ReadTimeout = cfg.Timeout
	opts.WriteTimeout = cfg.Timeout
	opts.MaxRetries = -1

	return NewWithClient(redis.NewClient(opts), cfg.KeyPrefix, cfg.Timeout), nil
}

// NewWithClient wraps an existing Redis client.
func NewWithClient(client *redis.Client, keyPrefix string, timeout time.Duration) *Backend {
	return &Backend{
		client:    client,
		keyPrefix: keyPrefix,
		timeout:   timeout,
	}
}

// Get implements store.Backend. A missing key is not an error.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	val, err := b.client.Get(ctx, b.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify(err)
	}
	return val, true, nil
}

// Set implements store.Backend.
func (b *Backend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if err := b.client.Set(ctx, b.keyPrefix+key, value, ttl).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	return classify(b.client.Ping(ctx).Err())
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	return b.client.Close()
}

func (b *Backend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

// classify maps a Redis client error onto the store failure classes.
// Refused connections are retryable; timeouts are not.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w: %v", store.ErrConnRefused, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: %v", store.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", store.ErrTimeout, err)
	}
	return err
}
