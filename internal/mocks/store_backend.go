package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/scoring-api/internal/store"
)

// MockBackend implements store.Backend for testing.
// Without function fields it behaves like an in-memory store.
type MockBackend struct {
	// Function fields for customizable behavior
	GetFn   func(ctx context.Context, key string) (string, bool, error)
	SetFn   func(ctx context.Context, key, value string, ttl time.Duration) error
	CloseFn func() error

	// Data for default implementation
	Values map[string]string
	TTLs   map[string]time.Duration

	mu       sync.Mutex
	getCalls int
	setCalls int
}

// Ensure MockBackend implements store.Backend
var _ store.Backend = (*MockBackend)(nil)

// NewMockBackend creates a mock backend preloaded with values.
func NewMockBackend(values map[string]string) *MockBackend {
	if values == nil {
		values = make(map[string]string)
	}
	return &MockBackend{
		Values: values,
		TTLs:   make(map[string]time.Duration),
	}
}

// Get implements store.Backend.
func (m *MockBackend) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Values[key]
	return v, ok, nil
}

// Set implements store.Backend.
func (m *MockBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	m.setCalls++
	m.mu.Unlock()

	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Values == nil {
		m.Values = make(map[string]string)
	}
	if m.TTLs == nil {
		m.TTLs = make(map[string]time.Duration)
	}
	m.Values[key] = value
	m.TTLs[key] = ttl
	return nil
}

// Close implements store.Backend.
func (m *MockBackend) Close() error {
	if m.CloseFn != nil {
		return m.CloseFn()
	}
	return nil
}

// GetCalls returns how many times Get was called.
func (m *MockBackend) GetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

// SetCalls returns how many times Set was called.
func (m *MockBackend) SetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}
