// Package monitor is the headless counterpart of the dashboard: it
// polls the same backend snapshot on an interval and reports it through
// structured logs instead of a terminal. Deployments use it to watch an
// installation from a host with no TTY.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisgate/aegis/internal/degraded"
	"github.com/aegisgate/aegis/internal/model"
	"github.com/aegisgate/aegis/internal/poll"
)

// Snapshotter is the single fetch the monitor needs. The live gateway
// satisfies it.
type Snapshotter interface {
	Snapshot(ctx context.Context) (model.Snapshot, error)
}

// Monitor drives a poll.Subscription over a Snapshotter and keeps the
// latest result. On a failed fetch it substitutes the built-in sample
// data and flags degraded mode, mirroring the dashboard's behavior.
type Monitor struct {
	src     Snapshotter
	sub     *poll.Subscription
	timeout time.Duration
	log     zerolog.Logger

	mu       sync.Mutex
	latest   model.Snapshot
	degraded bool
	fetched  bool
}

// New builds a monitor. A nil clock uses the real clock.
func New(src Snapshotter, clock poll.Clock, interval, timeout time.Duration, log zerolog.Logger) *Monitor {
	if timeout <= 0 {
		timeout = model.DefaultRequestTimeout
	}
	m := &Monitor{
		src:     src,
		timeout: timeout,
		log:     log.With().Str("component", "monitor").Logger(),
	}
	m.sub = poll.NewSubscription(clock, interval, m.fetch, m.apply, log)
	return m
}

// Start begins polling until Stop is called or ctx is canceled.
func (m *Monitor) Start(ctx context.Context) {
	m.sub.Start(ctx)
}

// Stop ends polling. No result is applied after Stop returns.
func (m *Monitor) Stop() {
	m.sub.Stop()
}

func (m *Monitor) fetch(ctx context.Context) (model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.src.Snapshot(ctx)
}

func (m *Monitor) apply(snap model.Snapshot, err error) {
	if err != nil {
		m.log.Warn().Err(err).Msg("fetch failed, using sample data")
		snap = degraded.Snapshot()
	}

	m.mu.Lock()
	m.latest = snap
	m.degraded = err != nil
	m.fetched = true
	m.mu.Unlock()

	if err == nil && snap.Stats != nil {
		m.log.Info().
			Int("active_cameras", snap.Stats.ActiveCameras).
			Int("total_cameras", snap.Stats.TotalCameras).
			Int("granted", snap.Stats.AccessGranted).
			Int("denied", snap.Stats.AccessDenied).
			Int("tailgating", snap.Stats.TailgatingIncidents).
			Int("logs", len(snap.Logs)).
			Msg("snapshot")
	}
}

// Latest returns the most recent snapshot, whether a fetch has
// completed yet, and whether the snapshot came from the degraded
// fallback.
func (m *Monitor) Latest() (snap model.Snapshot, fetched, fallback bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest, m.fetched, m.degraded
}
