package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

func testConfig(id, category string) domain.ConnectorConfig {
	return domain.ConnectorConfig{
		ID:       id,
		Name:     id,
		Category: category,
		AuthKind: domain.AuthAPIKey,
		Status:   domain.StatusNotConnected,
		Enabled:  true,
	}
}

func fakeFactory(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth) driven.Connector {
	return &fakeConnector{cfg: cfg, auth: auth}
}

func TestConnectorRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewConnectorRegistry()
	cfg := testConfig("alpha", domain.CategoryBilling)
	reg.Register("alpha", fakeFactory, cfg)

	got, ok := reg.Config("alpha")
	require.True(t, ok)
	assert.Equal(t, cfg, got)

	factory, ok := reg.ConnectorClass("alpha")
	require.True(t, ok)
	assert.NotNil(t, factory)

	_, ok = reg.Config("missing")
	assert.False(t, ok)
	_, ok = reg.ConnectorClass("missing")
	assert.False(t, ok)
}

func TestConnectorRegistry_OverwriteKeepsOrder(t *testing.T) {
	reg := NewConnectorRegistry()
	reg.Register("a", fakeFactory, testConfig("a", "x"))
	reg.Register("b", fakeFactory, testConfig("b", "x"))

	replaced := testConfig("a", "y")
	replaced.Name = "Replaced"
	reg.Register("a", fakeFactory, replaced)

	all := reg.ListAll()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "Replaced", all[0].Name)
	assert.Equal(t, "b", all[1].ID)

	got, ok := reg.Config("a")
	require.True(t, ok)
	assert.Equal(t, replaced, got)
}

func TestConnectorRegistry_ListByCategory(t *testing.T) {
	reg := NewConnectorRegistry()
	reg.Register("a", fakeFactory, testConfig("a", domain.CategoryCommunication))
	reg.Register("b", fakeFactory, testConfig("b", domain.CategoryBilling))
	reg.Register("c", fakeFactory, testConfig("c", domain.CategoryCommunication))

	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{name: "communication", category: domain.CategoryCommunication, want: []string{"a", "c"}},
		{name: "billing", category: domain.CategoryBilling, want: []string{"b"}},
		{name: "case sensitive", category: "Billing", want: []string{}},
		{name: "unknown", category: "storage", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(reg.ListByCategory(tt.category)))
		})
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(reg.ListConnectors("")))
	assert.Equal(t, []string{"b"}, ids(reg.ListConnectors(domain.CategoryBilling)))
}

func TestConnectorRegistry_GetConnector(t *testing.T) {
	reg := NewConnectorRegistry()
	cfg := testConfig("alpha", "x")
	reg.Register("alpha", fakeFactory, cfg)

	auth := &domain.ConnectorAuth{Credentials: map[string]string{"api_key": "k"}}
	c, ok := reg.GetConnector("alpha", auth)
	require.True(t, ok)
	assert.Equal(t, cfg, c.Config())
	assert.Same(t, auth, c.(*fakeConnector).auth)

	other, ok := reg.GetConnector("alpha", nil)
	require.True(t, ok)
	assert.NotSame(t, c, other)

	c, ok = reg.GetConnector("missing", nil)
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestConnectorRegistry_Empty(t *testing.T) {
	reg := NewConnectorRegistry()

	assert.NotNil(t, reg.ListAll())
	assert.Empty(t, reg.ListAll())
	assert.Empty(t, reg.ListConnectors(""))
}

func TestConnectorRegistry_ConcurrentReads(t *testing.T) {
	reg := NewConnectorRegistry()
	RegisterBuiltinConnectors(reg, connectors.Deps{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, reg.ListAll(), 5)
			_, ok := reg.GetConnector("stripe", nil)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}

func TestRegisterBuiltinConnectors(t *testing.T) {
	reg := NewConnectorRegistry()
	RegisterBuiltinConnectors(reg, connectors.Deps{})

	assert.Equal(t,
		[]string{"gmail", "google_calendar", "stripe", "twilio_whatsapp", "github"},
		ids(reg.ListAll()))
	assert.Equal(t, []string{"stripe"}, ids(reg.ListByCategory(domain.CategoryBilling)))
	assert.Equal(t, []string{"gmail", "twilio_whatsapp"}, ids(reg.ListByCategory(domain.CategoryCommunication)))

	for _, cfg := range reg.ListAll() {
		t.Run(cfg.ID, func(t *testing.T) {
			c, ok := reg.GetConnector(cfg.ID, nil)
			require.True(t, ok)
			assert.Equal(t, cfg.ID, c.Config().ID)
			assert.True(t, cfg.Enabled)
			assert.True(t, cfg.Status.Valid())
			assert.Equal(t, domain.StatusNotConnected, c.AuthStatus(context.Background()))
		})
	}
}

func ids(configs []domain.ConnectorConfig) []string {
	out := make([]string, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, cfg.ID)
	}
	return out
}
