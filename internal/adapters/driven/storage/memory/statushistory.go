package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Ensure StatusHistory implements the interface.
var _ driven.StatusHistory = (*StatusHistory)(nil)

// StatusHistory is an in-memory implementation of driven.StatusHistory.
// Records are kept per connector in insertion order.
type StatusHistory struct {
	mu      sync.RWMutex
	records map[string][]domain.StatusRecord
}

// NewStatusHistory creates a new in-memory status history.
func NewStatusHistory() *StatusHistory {
	return &StatusHistory{
		records: make(map[string][]domain.StatusRecord),
	}
}

// Record appends one status check.
func (h *StatusHistory) Record(_ context.Context, rec domain.StatusRecord) error {
	if rec.ConnectorID == "" {
		return domain.ErrInvalidInput
	}
	if rec.CheckedAt.IsZero() {
		rec.CheckedAt = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[rec.ConnectorID] = append(h.records[rec.ConnectorID], rec)
	return nil
}

// History returns recent checks for a connector, most recent first.
func (h *StatusHistory) History(_ context.Context, connectorID string, limit int) ([]domain.StatusRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	recs := h.records[connectorID]
	n := len(recs)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]domain.StatusRecord, 0, n)
	for i := len(recs) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, recs[i])
	}
	return result, nil
}

// Prune keeps the most recent keep records per connector.
func (h *StatusHistory) Prune(_ context.Context, keep int) error {
	keep = max(keep, 0)
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, recs := range h.records {
		if len(recs) > keep {
			h.records[id] = append([]domain.StatusRecord(nil), recs[len(recs)-keep:]...)
		}
	}
	return nil
}
