package stripe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

const testKey = "sk_test_123"

type fakeStripe struct {
	*httptest.Server
	calls atomic.Int32
	fail  atomic.Bool

	mu          sync.Mutex
	idempotency []string
}

func newFakeStripe(t *testing.T) *fakeStripe {
	t.Helper()
	f := &fakeStripe{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if f.fail.Load() || r.Header.Get("Authorization") != "Bearer "+testKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/balance":
			_, _ = w.Write([]byte(`{"object":"balance","available":[]}`))
		case r.URL.Path == "/customers":
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"cus_1"},{"id":"cus_2"}]}`))
		case r.URL.Path == "/subscriptions":
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"sub_1","status":"active"}]}`))
		case r.URL.Path == "/billing_portal/sessions" && r.Method == http.MethodPost:
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "cus_1", r.PostForm.Get("customer"))
			assert.Equal(t, "https://app.example.com/account", r.PostForm.Get("return_url"))
			f.mu.Lock()
			f.idempotency = append(f.idempotency, r.Header.Get("Idempotency-Key"))
			f.mu.Unlock()
			_, _ = w.Write([]byte(`{"id":"bps_1","url":"https://billing.stripe.com/session/abc"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeStripe) deps(key string) connectors.Deps {
	values := map[string]string{
		SettingAPIBase:   f.URL + "/",
		SettingSecretKey: key,
	}
	return connectors.Deps{
		Settings:   driven.SettingsFunc(func(k string) string { return values[k] }),
		HTTPClient: f.Client(),
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "stripe", cfg.ID)
	assert.Equal(t, domain.CategoryBilling, cfg.Category)
	assert.Equal(t, domain.AuthAPIKey, cfg.AuthKind)
	assert.Equal(t, "💳", cfg.Icon)
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "valid key", key: testKey},
		{name: "restricted-looking key", key: "rk_live_1", wantErr: domain.ErrAuthInvalid},
		{name: "missing key", key: "", wantErr: domain.ErrAuthRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeStripe(t)
			c := New(DefaultConfig(), nil, f.deps(tt.key))

			result, err := c.Authorize(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.AuthStatusReady, result.Status)
			assert.Equal(t, "Stripe API key configured", result.Message)
			assert.Empty(t, result.AuthURL)
			assert.Zero(t, f.calls.Load())
		})
	}
}

func TestAuthStatus(t *testing.T) {
	t.Run("no key is not connected without a network call", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(""))

		assert.Equal(t, domain.StatusNotConnected, c.AuthStatus(context.Background()))
		assert.Zero(t, f.calls.Load())
	})

	t.Run("valid key is connected", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		assert.Equal(t, domain.StatusConnected, c.AuthStatus(context.Background()))
	})

	t.Run("rejected key is error", func(t *testing.T) {
		f := newFakeStripe(t)
		f.fail.Store(true)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		assert.Equal(t, domain.StatusError, c.AuthStatus(context.Background()))
	})

	t.Run("expired stored key skips the probe", func(t *testing.T) {
		f := newFakeStripe(t)
		auth := &domain.ConnectorAuth{
			Kind:        domain.AuthAPIKey,
			Credentials: map[string]string{domain.CredAPIKey: testKey},
			ExpiresAt:   time.Now().Add(-time.Hour),
		}
		c := New(DefaultConfig(), auth, f.deps(""))

		assert.Equal(t, domain.StatusExpired, c.AuthStatus(context.Background()))
		assert.Zero(t, f.calls.Load())
	})

	t.Run("stored key takes precedence over settings", func(t *testing.T) {
		f := newFakeStripe(t)
		auth := &domain.ConnectorAuth{
			Kind:        domain.AuthAPIKey,
			Credentials: map[string]string{domain.CredAPIKey: testKey},
		}
		c := New(DefaultConfig(), auth, f.deps("sk_test_other"))

		assert.Equal(t, domain.StatusConnected, c.AuthStatus(context.Background()))
	})
}

func TestRevoke(t *testing.T) {
	f := newFakeStripe(t)

	assert.True(t, New(DefaultConfig(), nil, f.deps(testKey)).Revoke(context.Background()))
	assert.True(t, New(DefaultConfig(), nil, f.deps("")).Revoke(context.Background()))
	assert.Zero(t, f.calls.Load())
}

func TestResources(t *testing.T) {
	ctx := context.Background()

	t.Run("customers honour the limit", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		items := c.Resources(ctx, ResourceCustomers, domain.ResourceOptions{Limit: 3})
		require.Len(t, items, 2)
		assert.Equal(t, "cus_1", items[0]["id"])
	})

	t.Run("subscriptions use the default limit", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		items := c.Resources(ctx, ResourceSubscriptions, domain.ResourceOptions{})
		require.Len(t, items, 1)
		assert.Equal(t, "active", items[0]["status"])
	})

	t.Run("unknown type is empty", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		items := c.Resources(ctx, "invoices", domain.ResourceOptions{})
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Zero(t, f.calls.Load())
	})

	t.Run("provider failure is empty", func(t *testing.T) {
		f := newFakeStripe(t)
		f.fail.Store(true)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		items := c.Resources(ctx, ResourceCustomers, domain.ResourceOptions{Limit: 3})
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("missing key is empty without a network call", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(""))

		assert.Empty(t, c.Resources(ctx, ResourceCustomers, domain.ResourceOptions{}))
		assert.Zero(t, f.calls.Load())
	})
}

func TestCreatePortalSession(t *testing.T) {
	ctx := context.Background()

	t.Run("returns session with url", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		session, err := c.CreatePortalSession(ctx, "cus_1", "https://app.example.com/account")
		require.NoError(t, err)
		assert.Equal(t, "https://billing.stripe.com/session/abc", session["url"])

		_, err = c.CreatePortalSession(ctx, "cus_1", "https://app.example.com/account")
		require.NoError(t, err)

		f.mu.Lock()
		defer f.mu.Unlock()
		require.Len(t, f.idempotency, 2)
		assert.NotEmpty(t, f.idempotency[0])
		assert.NotEqual(t, f.idempotency[0], f.idempotency[1])
	})

	t.Run("empty customer is invalid input", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		_, err := c.CreatePortalSession(ctx, "", "https://app.example.com")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, f.calls.Load())
	})

	t.Run("provider rejection keeps the cause", func(t *testing.T) {
		f := newFakeStripe(t)
		f.fail.Store(true)
		c := New(DefaultConfig(), nil, f.deps(testKey))

		_, err := c.CreatePortalSession(ctx, "cus_1", "https://app.example.com/account")
		assert.ErrorIs(t, err, domain.ErrAuthInvalid)
		assert.True(t, connectors.IsAPIStatus(err, http.StatusUnauthorized))
	})

	t.Run("missing key requires auth", func(t *testing.T) {
		f := newFakeStripe(t)
		c := New(DefaultConfig(), nil, f.deps(""))

		_, err := c.CreatePortalSession(ctx, "cus_1", "")
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}
