package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// statusHistory implements driven.StatusHistory.
type statusHistory struct {
	store *Store
}

var _ driven.StatusHistory = (*statusHistory)(nil)

// Record appends one status check.
func (s *statusHistory) Record(ctx context.Context, rec domain.StatusRecord) error {
	if rec.ConnectorID == "" {
		return domain.ErrInvalidInput
	}
	checkedAt := rec.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO status_history (connector_id, status, message, checked_at)
		VALUES (?, ?, ?, ?)
	`, rec.ConnectorID, string(rec.Status), rec.Message, checkedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("recording status: %w", err)
	}
	return nil
}

// History returns recent checks for a connector.
// Results are ordered by check time descending (most recent first).
func (s *statusHistory) History(ctx context.Context, connectorID string, limit int) ([]domain.StatusRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT connector_id, status, message, checked_at
		FROM status_history
		WHERE connector_id = ?
		ORDER BY checked_at DESC, id DESC
		LIMIT ?
	`, connectorID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying status history: %w", err)
	}
	defer rows.Close()

	records := []domain.StatusRecord{}
	for rows.Next() {
		var (
			rec       domain.StatusRecord
			status    string
			checkedAt sql.NullString
		)
		if err := rows.Scan(&rec.ConnectorID, &status, &rec.Message, &checkedAt); err != nil {
			return nil, fmt.Errorf("scanning status history: %w", err)
		}
		rec.Status = domain.ConnectorStatus(status)
		rec.CheckedAt = parseNullableTime(checkedAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status history: %w", err)
	}
	return records, nil
}

// Prune removes old records beyond the retention limit.
// Keeps the most recent 'keep' records per connector.
func (s *statusHistory) Prune(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM status_history
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY connector_id ORDER BY checked_at DESC, id DESC) AS rn
				FROM status_history
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning status history: %w", err)
	}
	return nil
}
