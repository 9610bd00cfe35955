package httpclient

import (
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/metrics"
)

// RateLimitConfig holds rate limiting configuration for a host.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// fallbackRateLimit applies to hosts without an entry.
var fallbackRateLimit = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}

// DefaultRateLimits are conservative per-host limits, well below the
// providers' published quotas.
var DefaultRateLimits = map[string]RateLimitConfig{
	"gmail.googleapis.com":  {RequestsPerSecond: 2.0, BurstSize: 5},
	"www.googleapis.com":    {RequestsPerSecond: 5.0, BurstSize: 10},
	"oauth2.googleapis.com": {RequestsPerSecond: 2.0, BurstSize: 5},
	"api.stripe.com":        {RequestsPerSecond: 20.0, BurstSize: 25},
	"api.twilio.com":        {RequestsPerSecond: 10.0, BurstSize: 20},
	"api.github.com":        {RequestsPerSecond: 1.0, BurstSize: 10},
}

// rateLimitedTransport waits on a per-host token bucket before each request.
type rateLimitedTransport struct {
	next    http.RoundTripper
	configs map[string]RateLimitConfig

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newRateLimitedTransport(next http.RoundTripper, configs map[string]RateLimitConfig) *rateLimitedTransport {
	return &rateLimitedTransport{
		next:     next,
		configs:  configs,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (t *rateLimitedTransport) limiter(host string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	if l, ok := t.limiters[host]; ok {
		return l
	}
	cfg, ok := t.configs[host]
	if !ok {
		cfg = fallbackRateLimit
	}
	l := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize)
	t.limiters[host] = l
	return l
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	l := t.limiter(req.URL.Host)
	if l.Tokens() < 1 {
		metrics.RateLimitWaitsTotal.WithLabelValues(req.URL.Host).Inc()
	}
	if err := l.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("%w: waiting for %s: %v", domain.ErrRateLimited, req.URL.Host, err)
	}
	return t.next.RoundTrip(req)
}
