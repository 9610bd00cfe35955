package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-connect/internal/logger"
	"github.com/custodia-labs/sercha-connect/internal/metrics"
)

// Ensure Monitor implements the interface.
var _ driving.StatusMonitor = (*Monitor)(nil)

// DefaultMonitorInterval is the gap between background status sweeps.
const DefaultMonitorInterval = 5 * time.Minute

// Monitor recomputes the status of every connector on a fixed interval.
// Each sweep goes through the gateway, so checks land in status history
// when one is configured.
type Monitor struct {
	gateway  driving.ConnectorGateway
	interval time.Duration

	history driven.StatusHistory
	keep    int

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewMonitor creates a monitor. A non-positive interval selects
// DefaultMonitorInterval.
func NewMonitor(gateway driving.ConnectorGateway, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	return &Monitor{
		gateway:  gateway,
		interval: interval,
	}
}

// SetPruning trims history to keep records per connector after each sweep.
func (m *Monitor) SetPruning(history driven.StatusHistory, keep int) {
	m.history = history
	m.keep = keep
}

// Interval returns the gap between sweeps.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Start sweeps immediately and then on every tick. It blocks until ctx is
// cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	m.stopCh = make(chan struct{})
	stopCh := m.stopCh
	m.wg.Add(1)
	m.mu.Unlock()
	defer m.wg.Done()

	m.Sweep(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.markStopped()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// Stop ends the loop and waits for an in-flight sweep to finish.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopCh)
	m.mu.Unlock()

	m.wg.Wait()
}

// Running reports whether the loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) markStopped() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// Sweep runs one round of status checks and returns the reports.
func (m *Monitor) Sweep(ctx context.Context) []driving.StatusReport {
	reports := m.gateway.StatusAll(ctx)
	metrics.MonitorSweepsTotal.Inc()

	connected := 0
	for _, r := range reports {
		up := 0.0
		if r.Status == domain.StatusConnected {
			up = 1
			connected++
		}
		metrics.ConnectorUp.WithLabelValues(r.ConnectorID).Set(up)
	}
	logger.Debug("monitor: %d/%d connectors connected", connected, len(reports))

	if m.history != nil && m.keep > 0 {
		if err := m.history.Prune(ctx, m.keep); err != nil {
			logger.Warn("monitor: pruning status history: %v", err)
		}
	}
	return reports
}
