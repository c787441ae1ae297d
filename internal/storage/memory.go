// ABOUTME: In-memory BlobStore for tests and throwaway sessions.
// ABOUTME: Supports injected write failures to exercise error paths.
package storage

import "sync"

// MemoryStore keeps blobs in a map. Values are copied in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[string][]byte
	failSet error
}

var _ BlobStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FailWrites makes every subsequent Set return err. Pass nil to recover.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet = err
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
