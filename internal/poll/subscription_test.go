package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisgate/aegis/internal/model"
)

type fakeClock struct {
	now   time.Time
	ticks chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:   time.Date(2025, 8, 7, 14, 30, 0, 0, time.UTC),
		ticks: make(chan time.Time),
	}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Ticker(time.Duration) Ticker {
	return &fakeTicker{ch: c.ticks}
}

// tick advances the subscription by one ticker fire.
func (c *fakeClock) tick() {
	c.ticks <- c.now
}

type fakeTicker struct {
	ch chan time.Time
}

func (t *fakeTicker) Chan() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()                  {}

func snapshotWithCameras(n int) model.Snapshot {
	return model.Snapshot{Stats: &model.SystemStats{TotalCameras: n}}
}

func TestSubscriptionAppliesFetchResult(t *testing.T) {
	clock := newFakeClock()
	applied := make(chan model.Snapshot, 1)

	sub := NewSubscription(clock, time.Second,
		func(context.Context) (model.Snapshot, error) {
			return snapshotWithCameras(4), nil
		},
		func(snap model.Snapshot, err error) {
			if err != nil {
				t.Errorf("apply got error: %v", err)
			}
			applied <- snap
		},
		zerolog.Nop())

	sub.Start(context.Background())
	defer sub.Stop()

	select {
	case snap := <-applied:
		if snap.Stats == nil || snap.Stats.TotalCameras != 4 {
			t.Errorf("applied snapshot = %+v, want 4 cameras", snap.Stats)
		}
	case <-time.After(time.Second):
		t.Fatal("initial fetch was never applied")
	}
}

func TestSubscriptionStopBeforeResolveMutatesNothing(t *testing.T) {
	clock := newFakeClock()
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var applies atomic.Int32

	sub := NewSubscription(clock, time.Second,
		func(context.Context) (model.Snapshot, error) {
			started <- struct{}{}
			<-release
			return snapshotWithCameras(1), nil
		},
		func(model.Snapshot, error) {
			applies.Add(1)
		},
		zerolog.Nop())

	sub.Start(context.Background())
	<-started
	sub.Stop()
	close(release)

	// Give the late response a chance to misbehave.
	time.Sleep(50 * time.Millisecond)
	if got := applies.Load(); got != 0 {
		t.Errorf("apply ran %d times after Stop, want 0", got)
	}
}

func TestSubscriptionSkipsTickWhileFetching(t *testing.T) {
	clock := newFakeClock()
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	var fetches atomic.Int32
	applied := make(chan struct{}, 4)

	sub := NewSubscription(clock, time.Second,
		func(context.Context) (model.Snapshot, error) {
			fetches.Add(1)
			started <- struct{}{}
			<-release
			return snapshotWithCameras(1), nil
		},
		func(model.Snapshot, error) {
			applied <- struct{}{}
		},
		zerolog.Nop())

	sub.Start(context.Background())
	defer sub.Stop()

	<-started
	clock.tick()
	clock.tick()

	if got := fetches.Load(); got != 1 {
		t.Errorf("fetches while one in flight = %d, want 1", got)
	}

	close(release)
	select {
	case <-applied:
	case <-time.After(time.Second):
		t.Fatal("outstanding fetch was never applied")
	}
}

func TestSubscriptionRefreshSupersedesInFlight(t *testing.T) {
	clock := newFakeClock()
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var calls atomic.Int32
	applied := make(chan model.Snapshot, 2)

	sub := NewSubscription(clock, time.Second,
		func(context.Context) (model.Snapshot, error) {
			if calls.Add(1) == 1 {
				started <- struct{}{}
				<-release
				return snapshotWithCameras(1), nil
			}
			return snapshotWithCameras(2), nil
		},
		func(snap model.Snapshot, err error) {
			applied <- snap
		},
		zerolog.Nop())

	sub.Start(context.Background())
	defer sub.Stop()

	<-started
	sub.Refresh(context.Background())

	select {
	case snap := <-applied:
		if snap.Stats.TotalCameras != 2 {
			t.Errorf("applied snapshot from call %d, want the refreshed one", snap.Stats.TotalCameras)
		}
	case <-time.After(time.Second):
		t.Fatal("refresh result was never applied")
	}

	// The superseded first fetch must be dropped when it resolves.
	close(release)
	select {
	case snap := <-applied:
		t.Errorf("superseded fetch was applied: %+v", snap.Stats)
	case <-time.After(50 * time.Millisecond):
	}
}
