package connectors

import (
	"context"
	"time"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/metrics"
)

// Now is the clock used for expiry checks.
var Now = time.Now

// ResolveStatus applies the status priority chain shared by all connectors:
// missing credentials, then expiry, then a live probe. The probe only runs
// when the first two checks pass.
func ResolveStatus(
	ctx context.Context,
	connectorID string,
	hasCredentials bool,
	auth *domain.ConnectorAuth,
	probe func(context.Context) bool,
) domain.ConnectorStatus {
	status := resolveStatus(ctx, hasCredentials, auth, probe)
	metrics.StatusChecksTotal.WithLabelValues(connectorID, string(status)).Inc()
	return status
}

func resolveStatus(
	ctx context.Context,
	hasCredentials bool,
	auth *domain.ConnectorAuth,
	probe func(context.Context) bool,
) domain.ConnectorStatus {
	if !hasCredentials {
		return domain.StatusNotConnected
	}
	if auth.IsExpired(Now()) {
		return domain.StatusExpired
	}
	if probe(ctx) {
		return domain.StatusConnected
	}
	return domain.StatusError
}

// StatusMessage is the human-readable message reported with a status.
func StatusMessage(status domain.ConnectorStatus) string {
	return "Connector is " + string(status)
}
