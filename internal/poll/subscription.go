package poll

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisgate/aegis/internal/model"
)

// FetchFunc loads a fresh snapshot for a subscribed view.
type FetchFunc func(ctx context.Context) (model.Snapshot, error)

// ApplyFunc receives the result of a completed fetch. It is called at
// most once per issued fetch and never after Stop returns.
type ApplyFunc func(snap model.Snapshot, err error)

// Subscription drives periodic refresh for one view. At most one fetch
// is in flight at a time; ticks that land while a fetch is outstanding
// are skipped rather than queued. Every issued fetch carries a sequence
// number and its result is applied only when that sequence is still the
// latest, so a superseded or post-stop response cannot mutate view
// state.
type Subscription struct {
	clock    Clock
	interval time.Duration
	fetch    FetchFunc
	apply    ApplyFunc
	log      zerolog.Logger

	mu       sync.Mutex
	seq      uint64
	inFlight bool
	stopped  bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSubscription builds a subscription. A nil clock falls back to the
// real clock; a non-positive interval falls back to the default refresh
// interval.
func NewSubscription(clock Clock, interval time.Duration, fetch FetchFunc, apply ApplyFunc, log zerolog.Logger) *Subscription {
	if clock == nil {
		clock = NewRealClock()
	}
	if interval <= 0 {
		interval = model.DefaultRefreshInterval
	}

	return &Subscription{
		clock:    clock,
		interval: interval,
		fetch:    fetch,
		apply:    apply,
		log:      log.With().Str("component", "poll").Logger(),
	}
}

// Start issues an immediate fetch and then refetches on every tick
// until the context is canceled or Stop is called.
func (s *Subscription) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run(ctx)
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.done)

	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()

	s.issue(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.issue(ctx)
		}
	}
}

// Refresh forces an immediate fetch. Unlike a tick it is not skipped
// when a fetch is already outstanding: it issues a new sequence, which
// invalidates the in-flight response.
func (s *Subscription) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.inFlight = true
	s.mu.Unlock()

	go s.do(ctx, seq)
}

// issue starts a fetch unless one is already in flight.
func (s *Subscription) issue(ctx context.Context) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if s.inFlight {
		s.mu.Unlock()
		s.log.Debug().Msg("tick skipped, fetch in flight")
		return
	}
	s.seq++
	seq := s.seq
	s.inFlight = true
	s.mu.Unlock()

	go s.do(ctx, seq)
}

func (s *Subscription) do(ctx context.Context, seq uint64) {
	snap, err := s.fetch(ctx)

	// apply runs under the lock so Stop cannot return while a result
	// is being delivered. apply must not call back into the
	// subscription.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || seq != s.seq {
		s.log.Debug().Uint64("seq", seq).Msg("stale response dropped")
		return
	}
	s.inFlight = false
	s.apply(snap, err)
}

// Stop ends the subscription. Any fetch still in flight resolves into
// the void: its result is never applied.
func (s *Subscription) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
