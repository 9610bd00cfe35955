package services

import (
	"sync"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-connect/internal/logger"
)

// Ensure ConnectorRegistry implements the interface.
var _ driving.ConnectorRegistry = (*ConnectorRegistry)(nil)

type registryEntry struct {
	factory driven.ConnectorFactory
	config  domain.ConnectorConfig
}

// ConnectorRegistry maps connector ids to factories and configs.
// Registration normally happens once at startup; reads are concurrent.
type ConnectorRegistry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
	order   []string
}

// NewConnectorRegistry creates an empty connector registry.
// Call RegisterBuiltinConnectors to populate it.
func NewConnectorRegistry() *ConnectorRegistry {
	return &ConnectorRegistry{
		entries: make(map[string]registryEntry),
	}
}

// Register inserts or overwrites the entry for id. An overwritten entry
// keeps the position of its first registration.
func (r *ConnectorRegistry) Register(id string, factory driven.ConnectorFactory, cfg domain.ConnectorConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		logger.Debug("registry: overwriting connector %q", id)
	} else {
		r.order = append(r.order, id)
	}
	r.entries[id] = registryEntry{factory: factory, config: cfg}
}

// ConnectorClass returns the factory registered under id.
func (r *ConnectorRegistry) ConnectorClass(id string) (driven.ConnectorFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e.factory, ok
}

// Config returns the config registered under id.
func (r *ConnectorRegistry) Config(id string) (domain.ConnectorConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e.config, ok
}

// ListAll returns every config in registration order.
func (r *ConnectorRegistry) ListAll() []domain.ConnectorConfig {
	return r.list(func(domain.ConnectorConfig) bool { return true })
}

// ListByCategory returns configs whose category equals category exactly.
func (r *ConnectorRegistry) ListByCategory(category string) []domain.ConnectorConfig {
	return r.list(func(cfg domain.ConnectorConfig) bool { return cfg.Category == category })
}

// GetConnector instantiates a fresh connector for id bound to auth.
func (r *ConnectorRegistry) GetConnector(id string, auth *domain.ConnectorAuth) (driven.Connector, bool) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok || e.factory == nil {
		return nil, false
	}
	return e.factory(e.config, auth), true
}

// ListConnectors lists all configs, or only those in category when non-empty.
func (r *ConnectorRegistry) ListConnectors(category string) []domain.ConnectorConfig {
	if category == "" {
		return r.ListAll()
	}
	return r.ListByCategory(category)
}

func (r *ConnectorRegistry) list(keep func(domain.ConnectorConfig) bool) []domain.ConnectorConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.ConnectorConfig, 0, len(r.order))
	for _, id := range r.order {
		cfg := r.entries[id].config
		if keep(cfg) {
			result = append(result, cfg)
		}
	}
	return result
}
