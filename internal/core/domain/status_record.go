package domain

import "time"

// StatusRecord is one persisted status check.
type StatusRecord struct {
	ConnectorID string          `json:"connector_id"`
	Status      ConnectorStatus `json:"status"`
	Message     string          `json:"message"`
	CheckedAt   time.Time       `json:"checked_at"`
}
