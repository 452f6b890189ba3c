package session

import (
	"context"
	"log/slog"
	"time"
)

// Reaper periodically evicts sessions older than a fixed threshold. The
// sweep is coarse: a session may outlive its threshold by up to one full
// interval before eviction.
type Reaper struct {
	registry *Registry
	interval time.Duration
	maxAge   time.Duration
}

// NewReaper creates a Reaper that sweeps registry every interval, evicting
// sessions older than maxAge.
func NewReaper(registry *Registry, interval, maxAge time.Duration) *Reaper {
	return &Reaper{
		registry: registry,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Run sweeps on each tick until ctx is cancelled. It is meant to be run in
// its own goroutine for the life of the process.
func (rp *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(rp.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rp.registry.SweepExpired(rp.maxAge); n > 0 {
				slog.Info("evicted expired sessions", slog.Int("count", n))
			}
		}
	}
}
