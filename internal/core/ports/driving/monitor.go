package driving

import "context"

// StatusMonitor recomputes connector status in the background.
type StatusMonitor interface {
	// Start sweeps on an interval until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop ends the loop.
	Stop()

	// Sweep runs one round of status checks.
	Sweep(ctx context.Context) []StatusReport
}
