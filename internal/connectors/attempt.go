package connectors

import (
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/logger"
	"github.com/custodia-labs/sercha-connect/internal/metrics"
)

// Attempt runs one outbound operation and reports whether it succeeded.
// Errors are logged and counted here and never returned, so every
// transport-facing operation has a single place where failures become
// negative results.
func Attempt(connectorID, op string, fn func() error) bool {
	return Observe(connectorID, op, fn()) == nil
}

// Observe logs and counts the outcome of an operation and returns err
// unchanged. Per-type extras use it directly so callers get the cause.
func Observe(connectorID, op string, err error) error {
	if err != nil {
		logger.Warn("%s: %s failed: %v", connectorID, op, err)
		metrics.OperationsTotal.WithLabelValues(connectorID, op, metrics.OutcomeFailure).Inc()
		return err
	}
	metrics.OperationsTotal.WithLabelValues(connectorID, op, metrics.OutcomeSuccess).Inc()
	return nil
}

// AttemptList runs a listing operation. Failures yield an empty, non-nil slice.
func AttemptList(connectorID, op string, fn func() ([]domain.Resource, error)) []domain.Resource {
	var items []domain.Resource
	ok := Attempt(connectorID, op, func() error {
		var err error
		items, err = fn()
		return err
	})
	if !ok || items == nil {
		return []domain.Resource{}
	}
	return items
}
