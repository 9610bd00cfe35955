package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/metrics"
)

func TestNewMonitor_DefaultInterval(t *testing.T) {
	gw, _ := newTestGateway(t)

	assert.Equal(t, DefaultMonitorInterval, NewMonitor(gw, 0).Interval())
	assert.Equal(t, DefaultMonitorInterval, NewMonitor(gw, -time.Second).Interval())
	assert.Equal(t, time.Minute, NewMonitor(gw, time.Minute).Interval())
}

func TestMonitor_Sweep(t *testing.T) {
	gw, store := newTestGateway(t)
	history := memory.NewStatusHistory()
	gw.SetStatusHistory(history)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "full", apiKey("good")))

	before := testutil.ToFloat64(metrics.MonitorSweepsTotal)
	reports := NewMonitor(gw, time.Minute).Sweep(ctx)

	require.Len(t, reports, 2)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.MonitorSweepsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ConnectorUp.WithLabelValues("full")))

	records, err := history.History(ctx, "full", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.StatusConnected, records[0].Status)
}

func TestMonitor_SweepMarksDisconnectedDown(t *testing.T) {
	gw, _ := newTestGateway(t)

	NewMonitor(gw, time.Minute).Sweep(context.Background())

	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ConnectorUp.WithLabelValues("full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ConnectorUp.WithLabelValues("bare")))
}

func TestMonitor_SweepPrunes(t *testing.T) {
	gw, _ := newTestGateway(t)
	history := memory.NewStatusHistory()
	gw.SetStatusHistory(history)
	ctx := context.Background()

	m := NewMonitor(gw, time.Minute)
	m.SetPruning(history, 2)
	for i := 0; i < 4; i++ {
		m.Sweep(ctx)
	}

	records, err := history.History(ctx, "bare", 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

type pruneFailingHistory struct{ *memory.StatusHistory }

func (pruneFailingHistory) Prune(_ context.Context, _ int) error {
	return errors.New("prune failed")
}

func TestMonitor_SweepPruneFailureIsLogged(t *testing.T) {
	gw, _ := newTestGateway(t)
	m := NewMonitor(gw, time.Minute)
	m.SetPruning(pruneFailingHistory{memory.NewStatusHistory()}, 1)

	assert.Len(t, m.Sweep(context.Background()), 2)
}

func TestMonitor_StartStop(t *testing.T) {
	gw, _ := newTestGateway(t)
	history := memory.NewStatusHistory()
	gw.SetStatusHistory(history)
	m := NewMonitor(gw, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- m.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		records, _ := history.History(context.Background(), "bare", 10)
		return len(records) >= 2
	}, time.Second, 5*time.Millisecond)
	assert.True(t, m.Running())

	m.Stop()
	require.NoError(t, <-done)
	assert.False(t, m.Running())

	// Stop on a stopped monitor is a no-op.
	m.Stop()
}

func TestMonitor_StartHonoursContext(t *testing.T) {
	gw, _ := newTestGateway(t)
	m := NewMonitor(gw, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()
	require.Eventually(t, m.Running, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, m.Running())
}

// blockingConnector holds AuthStatus until release is closed.
type blockingConnector struct {
	bareConnector
	entered chan struct{}
	release chan struct{}
}

func (b *blockingConnector) AuthStatus(_ context.Context) domain.ConnectorStatus {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
	return domain.StatusConnected
}

func TestMonitor_StopWaitsForInFlightSweep(t *testing.T) {
	slow := &blockingConnector{entered: make(chan struct{}, 1), release: make(chan struct{})}
	reg := NewConnectorRegistry()
	reg.Register("slow", func(cfg domain.ConnectorConfig, _ *domain.ConnectorAuth) driven.Connector {
		slow.cfg = cfg
		return slow
	}, testConfig("slow", domain.CategoryProductivity))
	m := NewMonitor(NewGatewayService(reg, newFakeAuthStore()), time.Hour)

	done := make(chan error, 1)
	go func() { done <- m.Start(context.Background()) }()

	select {
	case <-slow.entered:
	case <-time.After(time.Second):
		t.Fatal("sweep did not start")
	}

	stopped := make(chan struct{})
	go func() {
		m.Stop()
		close(stopped)
	}()

	assert.Never(t, func() bool {
		select {
		case <-stopped:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond)

	close(slow.release)
	require.NoError(t, <-done)
	<-stopped
	assert.False(t, m.Running())
}
