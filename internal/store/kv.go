package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by KV.Get for a key with no stored value.
var ErrNotFound = errors.New("key not found")

// KV is the minimal persistence contract the app state layer needs: get/set
// of opaque values plus change notification. Implementations must make Set
// durable before returning.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// MemoryKV is an in-memory KV for tests and dry runs. Values survive only as
// long as the process.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string][]byte

	// FailSet, when set, is returned by Set to simulate persistence failures.
	FailSet error
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
