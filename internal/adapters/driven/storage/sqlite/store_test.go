package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	require.NoError(t, store.Close())

	// Reopening must not reapply migrations.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	var count int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestAuthStore(t *testing.T) {
	ctx := context.Background()
	auths := setupTestStore(t).AuthStore()

	t.Run("missing returns nil", func(t *testing.T) {
		got, err := auths.Get(ctx, "gmail")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("save and get round trip", func(t *testing.T) {
		expires := time.Date(2030, 1, 2, 3, 4, 5, 600, time.UTC)
		auth := domain.ConnectorAuth{
			Kind:        domain.AuthOAuth2,
			Credentials: map[string]string{domain.CredAccessToken: "ya29.x", domain.CredRefreshToken: "1//r"},
			ExpiresAt:   expires,
			Scopes:      []string{"a", "b"},
		}
		require.NoError(t, auths.Save(ctx, "gmail", auth))

		got, err := auths.Get(ctx, "gmail")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, auth.Kind, got.Kind)
		assert.Equal(t, auth.Credentials, got.Credentials)
		assert.Equal(t, auth.Scopes, got.Scopes)
		assert.True(t, expires.Equal(got.ExpiresAt))
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, auths.Save(ctx, "gmail", domain.ConnectorAuth{
			Kind:        domain.AuthOAuth2,
			Credentials: map[string]string{domain.CredAccessToken: "ya29.y"},
		}))

		got, err := auths.Get(ctx, "gmail")
		require.NoError(t, err)
		assert.Equal(t, "ya29.y", got.Credential(domain.CredAccessToken))
		assert.True(t, got.ExpiresAt.IsZero())
		assert.Empty(t, got.Scopes)
	})

	t.Run("list and delete", func(t *testing.T) {
		require.NoError(t, auths.Save(ctx, "stripe", domain.ConnectorAuth{
			Kind:        domain.AuthAPIKey,
			Credentials: map[string]string{domain.CredAPIKey: "sk_test"},
		}))

		ids, err := auths.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"gmail", "stripe"}, ids)

		require.NoError(t, auths.Delete(ctx, "gmail"))
		require.NoError(t, auths.Delete(ctx, "gmail"))

		ids, err = auths.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"stripe"}, ids)
	})

	t.Run("empty id is invalid", func(t *testing.T) {
		err := auths.Save(ctx, "", domain.ConnectorAuth{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestStatusHistory(t *testing.T) {
	ctx := context.Background()
	history := setupTestStore(t).StatusHistory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	statuses := []domain.ConnectorStatus{
		domain.StatusNotConnected, domain.StatusConnected, domain.StatusError,
	}
	for i, status := range statuses {
		require.NoError(t, history.Record(ctx, domain.StatusRecord{
			ConnectorID: "stripe",
			Status:      status,
			Message:     "Connector is " + string(status),
			CheckedAt:   base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, history.Record(ctx, domain.StatusRecord{
		ConnectorID: "gmail", Status: domain.StatusConnected, CheckedAt: base,
	}))

	t.Run("most recent first", func(t *testing.T) {
		records, err := history.History(ctx, "stripe", 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, domain.StatusError, records[0].Status)
		assert.Equal(t, domain.StatusNotConnected, records[2].Status)
		assert.True(t, base.Add(2*time.Second).Equal(records[0].CheckedAt))
	})

	t.Run("limit", func(t *testing.T) {
		records, err := history.History(ctx, "stripe", 1)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("unknown connector is empty", func(t *testing.T) {
		records, err := history.History(ctx, "nope", 10)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("prune keeps most recent per connector", func(t *testing.T) {
		require.NoError(t, history.Prune(ctx, 1))

		records, err := history.History(ctx, "stripe", 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.StatusError, records[0].Status)

		records, err = history.History(ctx, "gmail", 10)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("empty id is invalid", func(t *testing.T) {
		assert.ErrorIs(t, history.Record(ctx, domain.StatusRecord{}), domain.ErrInvalidInput)
	})
}
