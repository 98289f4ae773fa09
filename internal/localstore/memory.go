package localstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/higuga/higuga/internal/errs"
)

// Memory is an in-memory Store for tests. Values round-trip through JSON so
// behavior matches the file store.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

// Load unmarshals the stored blob for key into v.
func (m *Memory) Load(key string, v any) error {
	m.mu.Lock()
	b, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("localstore: %q: %w", key, errs.ErrNotFound)
	}
	return json.Unmarshal(b, v)
}

// Save marshals v and keeps the blob under key.
func (m *Memory) Save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}

// Delete drops the key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Keys returns the stored key set (test helper).
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	return out
}
