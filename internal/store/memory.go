package store

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend is a process-local Backend. Values expire after their TTL;
// a zero TTL keeps the value until the process exits.
type MemoryBackend struct {
	mu      sync.Mutex
	items   map[string]memoryItem
	nowFunc func() time.Time
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// Ensure MemoryBackend implements Backend
var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		items:   make(map[string]memoryItem),
		nowFunc: time.Now,
	}
}

// Get implements Backend.
func (m *MemoryBackend) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return "", false, nil
	}
	if !item.expiresAt.IsZero() && !m.nowFunc().Before(item.expiresAt) {
		delete(m.items, key)
		return "", false, nil
	}
	return item.value, true, nil
}

// Set implements Backend.
func (m *MemoryBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := memoryItem{value: value}
	if ttl > 0 {
		item.expiresAt = m.nowFunc().Add(ttl)
	}
	m.items[key] = item
	return nil
}

// Close implements Backend.
func (m *MemoryBackend) Close() error {
	return nil
}
