// Package memory provides an in-memory settings source for tests and
// embedding the gateway in other programs.
package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.WritableSettings = (*Store)(nil)

// Store is an in-memory implementation of driven.WritableSettings.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates a store seeded with values.
func NewStore(values map[string]string) *Store {
	s := &Store{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Get returns the value for key.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores a value. An empty value removes the key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, key)
		return nil
	}
	s.values[key] = value
	return nil
}

// Keys returns all keys with a value, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
