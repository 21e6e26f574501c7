package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend(t *testing.T) {
	now := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryBackend()
	m.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "uid:1", "3.5", time.Hour))
	require.NoError(t, m.Set(ctx, "i:1", `["books"]`, 0))

	v, ok, err := m.Get(ctx, "uid:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3.5", v)

	now = now.Add(time.Hour)

	_, ok, err = m.Get(ctx, "uid:1")
	require.NoError(t, err)
	assert.False(t, ok, "value must expire after its TTL")

	v, ok, err = m.Get(ctx, "i:1")
	require.NoError(t, err)
	assert.True(t, ok, "zero TTL never expires")
	assert.Equal(t, `["books"]`, v)

	assert.NoError(t, m.Close())
}
