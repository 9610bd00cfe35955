// Package redis stores connector auth in Redis so several gateway
// processes can share credentials.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/logger"
)

// Ensure AuthStore implements the interface.
var _ driven.AuthStore = (*AuthStore)(nil)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "sercha-connect:auth:"

// ExpiredRetention is how long auth outlives its expiry, so status checks
// still report it as expired rather than missing.
const ExpiredRetention = 7 * 24 * time.Hour

// AuthStore is a Redis-backed implementation of driven.AuthStore.
// Each connector's auth is one JSON value.
type AuthStore struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

// Connect parses url, pings the server and returns a store.
func Connect(ctx context.Context, url string) (*AuthStore, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis parse: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	logger.Debug("redis ready at %s", opts.Addr)
	return NewAuthStore(client, DefaultPrefix), nil
}

// NewAuthStore wraps an existing client. An empty prefix selects DefaultPrefix.
func NewAuthStore(client *goredis.Client, prefix string) *AuthStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &AuthStore{client: client, prefix: prefix, now: time.Now}
}

// Close closes the underlying client.
func (s *AuthStore) Close() error {
	return s.client.Close()
}

func (s *AuthStore) key(connectorID string) string {
	return s.prefix + connectorID
}

// Get retrieves the auth for a connector. Returns nil, nil when missing.
func (s *AuthStore) Get(ctx context.Context, connectorID string) (*domain.ConnectorAuth, error) {
	raw, err := s.client.Get(ctx, s.key(connectorID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get auth: %w", err)
	}

	var auth domain.ConnectorAuth
	if err := json.Unmarshal(raw, &auth); err != nil {
		return nil, fmt.Errorf("unmarshalling auth: %w", err)
	}
	return &auth, nil
}

// Save stores or replaces the auth for a connector. Auth with an expiry
// is kept for ExpiredRetention past it, then dropped by Redis.
func (s *AuthStore) Save(ctx context.Context, connectorID string, auth domain.ConnectorAuth) error {
	if connectorID == "" {
		return domain.ErrInvalidInput
	}
	raw, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("marshalling auth: %w", err)
	}
	if err := s.client.Set(ctx, s.key(connectorID), raw, s.ttl(auth)).Err(); err != nil {
		return fmt.Errorf("redis set auth: %w", err)
	}
	return nil
}

// ttl returns the key lifetime for auth. Zero means no expiry. Auth saved
// after its expiry is still kept for ExpiredRetention.
func (s *AuthStore) ttl(auth domain.ConnectorAuth) time.Duration {
	if auth.ExpiresAt.IsZero() {
		return 0
	}
	return max(auth.ExpiresAt.Sub(s.now())+ExpiredRetention, ExpiredRetention)
}

// Delete removes the auth for a connector.
func (s *AuthStore) Delete(ctx context.Context, connectorID string) error {
	if err := s.client.Del(ctx, s.key(connectorID)).Err(); err != nil {
		return fmt.Errorf("redis delete auth: %w", err)
	}
	return nil
}

// List returns the connector ids with stored auth, sorted.
func (s *AuthStore) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 0).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan auth: %w", err)
		}
		for _, k := range keys {
			ids = append(ids, strings.TrimPrefix(k, s.prefix))
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	sort.Strings(ids)
	return ids, nil
}
