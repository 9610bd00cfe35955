package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

func TestStatusHistory(t *testing.T) {
	h := NewStatusHistory()
	ctx := context.Background()

	for _, status := range []domain.ConnectorStatus{
		domain.StatusNotConnected, domain.StatusConnected, domain.StatusExpired,
	} {
		require.NoError(t, h.Record(ctx, domain.StatusRecord{ConnectorID: "gmail", Status: status}))
	}

	records, err := h.History(ctx, "gmail", 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.StatusExpired, records[0].Status)
	assert.False(t, records[0].CheckedAt.IsZero())

	records, err = h.History(ctx, "gmail", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.StatusConnected, records[1].Status)

	require.NoError(t, h.Prune(ctx, 1))
	records, err = h.History(ctx, "gmail", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.StatusExpired, records[0].Status)

	records, err = h.History(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.ErrorIs(t, h.Record(ctx, domain.StatusRecord{}), domain.ErrInvalidInput)
}
