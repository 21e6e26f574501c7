// Package mocks provides shared test doubles for the store layer.
//
// MockBackend implements store.Backend over an in-memory map and records how
// often each method was called, so tests can assert on retry counts:
//
//	backend := &mocks.MockBackend{
//	    GetFn: func(ctx context.Context, key string) (string, bool, error) {
//	        return "", false, store.ErrConnRefused
//	    },
//	}
//	client := store.NewClient(backend, policy, logger)
//	// ...
//	assert.Equal(t, 3, backend.GetCalls())
//
// Function fields override the map-backed default behavior when set.
package mocks
