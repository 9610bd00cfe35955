package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

func newFakeCalendar(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer ya29.valid" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/calendar/v3/users/me/calendarList":
			_, _ = w.Write([]byte(`{"items":[{"id":"primary","summary":"Me"},{"id":"team","summary":"Team"}]}`))
		case r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodGet:
			q := r.URL.Query()
			assert.Equal(t, "startTime", q.Get("orderBy"))
			assert.Equal(t, "true", q.Get("singleEvents"))
			assert.Equal(t, "10", q.Get("maxResults"))
			_, _ = w.Write([]byte(`{"items":[{"id":"e1","summary":"Standup"}]}`))
		case r.URL.Path == "/calendar/v3/calendars/team/events" && r.Method == http.MethodGet:
			assert.Equal(t, "3", r.URL.Query().Get("maxResults"))
			_, _ = w.Write([]byte(`{"items":[]}`))
		case r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost:
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			body["id"] = "new1"
			_ = json.NewEncoder(w).Encode(body)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func depsFor(srv *httptest.Server, extra map[string]string) connectors.Deps {
	values := map[string]string{SettingAPIBase: srv.URL + "/calendar/v3"}
	for k, v := range extra {
		values[k] = v
	}
	return connectors.Deps{
		Settings:   driven.SettingsFunc(func(key string) string { return values[key] }),
		HTTPClient: srv.Client(),
	}
}

func tokenAuth(token string) *domain.ConnectorAuth {
	return &domain.ConnectorAuth{
		Kind:        domain.AuthOAuth2,
		Credentials: map[string]string{domain.CredAccessToken: token},
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "google_calendar", cfg.ID)
	assert.Equal(t, domain.CategoryProductivity, cfg.Category)
	assert.Equal(t, domain.AuthOAuth2, cfg.AuthKind)
}

func TestAuthorize(t *testing.T) {
	srv, calls := newFakeCalendar(t)
	c := New(DefaultConfig(), nil, depsFor(srv, map[string]string{SettingClientID: "cal-client"}))

	res, err := c.Authorize(context.Background())
	require.NoError(t, err)

	u, err := url.Parse(res.AuthURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "cal-client", q.Get("client_id"))
	assert.Equal(t, DefaultRedirectURI, q.Get("redirect_uri"))
	assert.Equal(t, "https://www.googleapis.com/auth/calendar.readonly https://www.googleapis.com/auth/calendar.events", q.Get("scope"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Zero(t, calls.Load())
}

func TestAuthorize_MissingClientID(t *testing.T) {
	srv, calls := newFakeCalendar(t)
	c := New(DefaultConfig(), nil, depsFor(srv, nil))

	_, err := c.Authorize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Contains(t, err.Error(), SettingClientID)
	assert.Zero(t, calls.Load())
}

func TestAuthStatus(t *testing.T) {
	tests := []struct {
		name      string
		auth      *domain.ConnectorAuth
		want      domain.ConnectorStatus
		wantCalls int32
	}{
		{"no auth", nil, domain.StatusNotConnected, 0},
		{"expired", &domain.ConnectorAuth{
			Credentials: map[string]string{domain.CredAccessToken: "ya29.valid"},
			ExpiresAt:   time.Now().Add(-time.Minute),
		}, domain.StatusExpired, 0},
		{"connected", tokenAuth("ya29.valid"), domain.StatusConnected, 1},
		{"rejected", tokenAuth("ya29.bad"), domain.StatusError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newFakeCalendar(t)
			c := New(DefaultConfig(), tt.auth, depsFor(srv, nil))

			assert.Equal(t, tt.want, c.AuthStatus(context.Background()))
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestResources(t *testing.T) {
	srv, _ := newFakeCalendar(t)
	c := New(DefaultConfig(), tokenAuth("ya29.valid"), depsFor(srv, nil))
	ctx := context.Background()

	events := c.Resources(ctx, ResourceEvents, domain.ResourceOptions{})
	require.Len(t, events, 1)
	assert.Equal(t, "Standup", events[0]["summary"])

	assert.Empty(t, c.Resources(ctx, ResourceEvents, domain.ResourceOptions{CalendarID: "team", Limit: 3}))

	calendars := c.Resources(ctx, ResourceCalendars, domain.ResourceOptions{})
	require.Len(t, calendars, 2)
	assert.Equal(t, "team", calendars[1]["id"])

	assert.Empty(t, c.Resources(ctx, "reminders", domain.ResourceOptions{}))
}

func TestCreateResource(t *testing.T) {
	srv, _ := newFakeCalendar(t)
	c := New(DefaultConfig(), tokenAuth("ya29.valid"), depsFor(srv, nil))
	ctx := context.Background()

	t.Run("creates timed event", func(t *testing.T) {
		res, err := c.CreateResource(ctx, ResourceEvents, map[string]any{
			"summary": "Review",
			"start":   "2026-05-01T10:00:00Z",
			"end":     "2026-05-01T11:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, "new1", res["id"])
		start, ok := res["start"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "2026-05-01T10:00:00Z", start["dateTime"])
	})

	t.Run("creates all-day event", func(t *testing.T) {
		res, err := c.CreateResource(ctx, ResourceEvents, map[string]any{
			"summary": "Offsite",
			"start":   "2026-05-02",
			"end":     "2026-05-03",
		})
		require.NoError(t, err)
		start, ok := res["start"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "2026-05-02", start["date"])
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := c.CreateResource(ctx, ResourceEvents, map[string]any{"summary": "x", "start": "tomorrow", "end": "2026-05-03"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = c.CreateResource(ctx, ResourceEvents, map[string]any{"start": "2026-05-02", "end": "2026-05-03"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := c.CreateResource(ctx, ResourceCalendars, map[string]any{})
		assert.ErrorIs(t, err, domain.ErrUnsupported)
	})

	t.Run("requires auth", func(t *testing.T) {
		anon := New(DefaultConfig(), nil, depsFor(srv, nil))
		_, err := anon.CreateResource(ctx, ResourceEvents, map[string]any{})
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}
