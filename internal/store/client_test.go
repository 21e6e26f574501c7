package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/phrazzld/scoring-api/internal/config"
	"github.com/phrazzld/scoring-api/internal/mocks"
	"github.com/phrazzld/scoring-api/internal/platform/logger"
	"github.com/phrazzld/scoring-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = store.RetryPolicy{Attempts: 3, Backoff: time.Millisecond}

func newTestClient(backend store.Backend) *store.Client {
	l, _ := logger.NewTestLogger()
	return store.NewClient(backend, fastPolicy, l)
}

func failingBackend(err error) *mocks.MockBackend {
	return &mocks.MockBackend{
		GetFn: func(ctx context.Context, key string) (string, bool, error) {
			return "", false, err
		},
		SetFn: func(ctx context.Context, key, value string, ttl time.Duration) error {
			return err
		},
	}
}

func TestClient_RetriesConnRefused(t *testing.T) {
	t.Parallel()

	refused := fmt.Errorf("dial tcp 127.0.0.1:6379: %w", store.ErrConnRefused)

	t.Run("cache_set", func(t *testing.T) {
		t.Parallel()
		backend := failingBackend(refused)
		err := newTestClient(backend).CacheSet(context.Background(), "test_key", "test_value", time.Minute)

		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrConnRefused)
		assert.Equal(t, 3, backend.SetCalls())
	})

	t.Run("cache_get", func(t *testing.T) {
		t.Parallel()
		backend := failingBackend(refused)
		_, _, err := newTestClient(backend).CacheGet(context.Background(), "test_key")

		assert.ErrorIs(t, err, store.ErrConnRefused)
		assert.Equal(t, 3, backend.GetCalls())
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		backend := failingBackend(refused)
		_, _, err := newTestClient(backend).Get(context.Background(), "test_key")

		assert.ErrorIs(t, err, store.ErrConnRefused)
		assert.Equal(t, 3, backend.GetCalls())

		var storeErr *store.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, store.OpGet, storeErr.Operation)
		assert.Equal(t, "test_key", storeErr.Key)
		assert.Equal(t, 3, storeErr.Attempts)
	})
}

func TestClient_DoesNotRetryTimeout(t *testing.T) {
	t.Parallel()

	backend := failingBackend(store.ErrTimeout)
	client := newTestClient(backend)
	ctx := context.Background()

	err := client.CacheSet(ctx, "test_key", "test_value", time.Minute)
	assert.ErrorIs(t, err, store.ErrTimeout)
	assert.Equal(t, 1, backend.SetCalls())

	_, _, err = client.CacheGet(ctx, "test_key")
	assert.ErrorIs(t, err, store.ErrTimeout)
	assert.Equal(t, 1, backend.GetCalls())

	_, _, err = client.Get(ctx, "test_key")
	assert.ErrorIs(t, err, store.ErrTimeout)
	assert.Equal(t, 2, backend.GetCalls())
}

func TestClient_DoesNotRetryUnknownFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("protocol error")
	backend := failingBackend(boom)

	_, _, err := newTestClient(backend).Get(context.Background(), "k")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, backend.GetCalls())
}

func TestClient_RecoversAfterTransientFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	backend := &mocks.MockBackend{
		GetFn: func(ctx context.Context, key string) (string, bool, error) {
			calls++
			if calls < 3 {
				return "", false, store.ErrConnRefused
			}
			return "3.5", true, nil
		},
	}

	value, ok, err := newTestClient(backend).CacheGet(context.Background(), "uid:1")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3.5", value)
	assert.Equal(t, 3, backend.GetCalls())
}

func TestClient_BackoffDoubles(t *testing.T) {
	t.Parallel()

	var stamps []time.Time
	backend := &mocks.MockBackend{
		SetFn: func(ctx context.Context, key, value string, ttl time.Duration) error {
			stamps = append(stamps, time.Now())
			return store.ErrConnRefused
		},
	}
	base := 10 * time.Millisecond
	client := store.NewClient(backend, store.RetryPolicy{Attempts: 3, Backoff: base}, nil)

	err := client.CacheSet(context.Background(), "k", "v", time.Minute)

	require.Error(t, err)
	require.Len(t, stamps, 3)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 2*base)
	assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 4*base)
}

func TestClient_PassesThroughValues(t *testing.T) {
	t.Parallel()

	backend := mocks.NewMockBackend(map[string]string{"i:1": `["a","b"]`})
	client := newTestClient(backend)
	ctx := context.Background()

	value, ok, err := client.Get(ctx, "i:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["a","b"]`, value)

	_, ok, err = client.Get(ctx, "i:2")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, client.CacheSet(ctx, "uid:x", "1.5", time.Hour))
	assert.Equal(t, "1.5", backend.Values["uid:x"])
	assert.Equal(t, time.Hour, backend.TTLs["uid:x"])
}

func TestClient_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	backend := failingBackend(store.ErrConnRefused)
	client := store.NewClient(backend, store.RetryPolicy{Attempts: 3, Backoff: time.Hour}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := client.Get(ctx, "k")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, backend.GetCalls())
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	backend := failingBackend(store.ErrTimeout)
	client := store.NewClient(backend, fastPolicy, nil, store.WithBreaker("test-open", 2, time.Hour))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _, err := client.Get(ctx, "i:1")
		assert.ErrorIs(t, err, store.ErrTimeout)
	}
	require.Equal(t, 2, backend.GetCalls())

	_, _, err := client.Get(ctx, "i:1")
	assert.ErrorIs(t, err, store.ErrCircuitOpen)
	assert.False(t, store.IsRetryable(err))
	assert.Equal(t, 2, backend.GetCalls(), "open breaker must not reach the backend")
}

func TestClient_BreakerCountsRetriedAttempts(t *testing.T) {
	t.Parallel()

	backend := failingBackend(store.ErrConnRefused)
	client := store.NewClient(backend, fastPolicy, nil, store.WithBreaker("test-retried", 2, time.Hour))

	_, _, err := client.CacheGet(context.Background(), "uid:1")

	// The third attempt is refused by the breaker.
	assert.ErrorIs(t, err, store.ErrCircuitOpen)
	assert.Equal(t, 2, backend.GetCalls())
}

func TestClient_BreakerClosesAfterCooldown(t *testing.T) {
	t.Parallel()

	fail := true
	backend := &mocks.MockBackend{
		GetFn: func(ctx context.Context, key string) (string, bool, error) {
			if fail {
				return "", false, store.ErrTimeout
			}
			return "", false, nil
		},
	}
	client := store.NewClient(backend, fastPolicy, nil, store.WithBreaker("test-cooldown", 1, 20*time.Millisecond))
	ctx := context.Background()

	_, _, err := client.Get(ctx, "k")
	require.ErrorIs(t, err, store.ErrTimeout)
	_, _, err = client.Get(ctx, "k")
	require.ErrorIs(t, err, store.ErrCircuitOpen)

	fail = false
	time.Sleep(40 * time.Millisecond)

	_, ok, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	assert.Empty(t, store.OptionsFromConfig(config.StoreConfig{}))
	assert.Len(t, store.OptionsFromConfig(config.StoreConfig{BreakerFailures: 3, BreakerCooldown: time.Second}), 1)
}
