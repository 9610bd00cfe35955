// Package httpclient builds the outbound *http.Client shared by all connectors.
//
// The transport chain is otelhttp spans, then Prometheus metrics, then a
// per-host token bucket, then the base transport. Requests are never retried:
// a failed call surfaces immediately to the connector.
package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/custodia-labs/sercha-connect/internal/metrics"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 30 * time.Second

// Options configures New.
type Options struct {
	// Timeout bounds a whole request. Zero selects DefaultTimeout.
	Timeout time.Duration
	// RateLimits overrides the per-host limits. Nil selects DefaultRateLimits.
	RateLimits map[string]RateLimitConfig
	// Base is the innermost transport. Nil selects http.DefaultTransport.
	Base http.RoundTripper
}

// New returns an instrumented, rate-limited client.
func New(opts Options) *http.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RateLimits == nil {
		opts.RateLimits = DefaultRateLimits
	}
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}

	var rt http.RoundTripper = newRateLimitedTransport(base, opts.RateLimits)
	rt = &instrumentedTransport{next: rt}
	rt = otelhttp.NewTransport(rt)

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: rt,
	}
}

// instrumentedTransport records request counts and latency per host.
type instrumentedTransport struct {
	next http.RoundTripper
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	host := req.URL.Host
	metrics.ProviderRequestDuration.WithLabelValues(host, req.Method).Observe(time.Since(start).Seconds())

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	metrics.ProviderRequestsTotal.WithLabelValues(host, req.Method, code).Inc()

	return resp, err
}
