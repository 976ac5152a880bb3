// Package store provides sdk.StateStore implementations: an in-memory map
// for tests and ephemeral hosts, and a bbolt-backed store for durable state.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"okinoko-bingo/sdk"
)

// Memory is a mutex-guarded in-memory state store.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Create binds a key that must not exist yet.
func (m *Memory) Create(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return fmt.Errorf("%w: %q", sdk.ErrKeyExists, key)
	}
	m.data[key] = cloneBytes(value)
	return nil
}

// Set writes a key unconditionally.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = cloneBytes(value)
	return nil
}

// Get returns (nil, nil) when the key is absent.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return cloneBytes(v), nil
}

// Keys lists all keys with the given prefix in sorted order.
func (m *Memory) Keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
