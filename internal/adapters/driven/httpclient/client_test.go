package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/metrics"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})

	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.NotNil(t, c.Transport)
}

func TestNew_RecordsRequestMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	host := mustHost(t, srv.URL)
	before := testutil.ToFloat64(metrics.ProviderRequestsTotal.WithLabelValues(host, http.MethodGet, "418"))

	c := New(Options{Timeout: 5 * time.Second})
	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	after := testutil.ToFloat64(metrics.ProviderRequestsTotal.WithLabelValues(host, http.MethodGet, "418"))
	assert.Equal(t, before+1, after)
}

func TestNew_TransportErrorCounted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	host := mustHost(t, addr)
	srv.Close()

	before := testutil.ToFloat64(metrics.ProviderRequestsTotal.WithLabelValues(host, http.MethodGet, "error"))

	c := New(Options{Timeout: time.Second})
	_, err := c.Get(addr)
	require.Error(t, err)

	after := testutil.ToFloat64(metrics.ProviderRequestsTotal.WithLabelValues(host, http.MethodGet, "error"))
	assert.Equal(t, before+1, after)
}

func TestRateLimitedTransport_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	host := mustHost(t, srv.URL)
	c := New(Options{RateLimits: map[string]RateLimitConfig{
		host: {RequestsPerSecond: 0.001, BurstSize: 1},
	}})

	// First request consumes the only token.
	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = c.Do(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRateLimited))
}

func TestRateLimitedTransport_LimiterPerHost(t *testing.T) {
	rt := newRateLimitedTransport(http.DefaultTransport, DefaultRateLimits)

	gmail := rt.limiter("gmail.googleapis.com")
	assert.Same(t, gmail, rt.limiter("gmail.googleapis.com"))
	assert.NotSame(t, gmail, rt.limiter("api.stripe.com"))
	assert.Equal(t, fallbackRateLimit.BurstSize, rt.limiter("example.com").Burst())
}

func mustHost(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Host
}
