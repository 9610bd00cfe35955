package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Ensure AuthStore implements the interface.
var _ driven.AuthStore = (*AuthStore)(nil)

// AuthStore is an in-memory implementation of driven.AuthStore.
type AuthStore struct {
	mu    sync.RWMutex
	auths map[string]domain.ConnectorAuth
}

// NewAuthStore creates a new in-memory auth store.
func NewAuthStore() *AuthStore {
	return &AuthStore{
		auths: make(map[string]domain.ConnectorAuth),
	}
}

// Get retrieves the auth for a connector. Returns nil, nil when missing.
// The returned value is a copy.
func (s *AuthStore) Get(_ context.Context, connectorID string) (*domain.ConnectorAuth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	auth, ok := s.auths[connectorID]
	if !ok {
		return nil, nil
	}
	auth = clone(auth)
	return &auth, nil
}

// Save stores or replaces the auth for a connector.
func (s *AuthStore) Save(_ context.Context, connectorID string, auth domain.ConnectorAuth) error {
	if connectorID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auths[connectorID] = clone(auth)
	return nil
}

// Delete removes the auth for a connector.
func (s *AuthStore) Delete(_ context.Context, connectorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.auths, connectorID)
	return nil
}

// List returns the connector ids with stored auth, sorted.
func (s *AuthStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.auths))
	for id := range s.auths {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func clone(auth domain.ConnectorAuth) domain.ConnectorAuth {
	auth.Credentials = maps.Clone(auth.Credentials)
	auth.Scopes = slices.Clone(auth.Scopes)
	return auth
}
