// Package storage is the client's local key-value persistence: JSON values
// under string keys, read with a caller-supplied default.
package storage

import (
	"bytes"
	"encoding/json"
	"sync"
)

// Store holds raw JSON documents by key.
type Store interface {
	Load(key string) ([]byte, bool)
	Save(key string, raw []byte) error
	Delete(key string) error
}

// Get decodes the value under key. Absent keys, JSON null and malformed
// documents all yield def; Get never fails.
func Get[T any](s Store, key string, def T) T {
	raw, ok := s.Load(key)
	if !ok {
		return def
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}

// Set encodes value and overwrites whatever was stored under key.
func Set(s Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Save(key, raw)
}

func Remove(s Store, key string) error {
	return s.Delete(key)
}

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

func (m *MemoryStore) Save(key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), raw...)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
