package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegisgate/aegis/internal/model"
)

// Page IDs, in tab order.
const (
	PageDashboard = "dashboard"
	PageCameras   = "cameras"
	PageLogs      = "logs"
	PageEmployees = "employees"
)

// Source is the backend contract the pages consume. The live gateway
// satisfies it; tests use stubs.
type Source interface {
	model.DataSource
	Snapshot(ctx context.Context) (model.Snapshot, error)
}

// TickMsg drives a page's periodic refresh. It is addressed: a tick
// carries the page it belongs to plus the tick-chain generation, so a
// leftover tick from a previous visit to the page cannot fork a second
// chain.
type TickMsg struct {
	Page string
	Gen  uint64
}

func tickCmd(page string, gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Page: page, Gen: gen}
	})
}

// refresher is the per-page refresh state machine. At most one fetch is
// in flight; ticks landing while one is outstanding are skipped. Every
// issued fetch carries a sequence number and a response is applied only
// when its sequence is still the latest, so a slow response can never
// overwrite newer data.
type refresher struct {
	page     string
	interval time.Duration
	timeout  time.Duration

	gen      uint64
	seq      uint64
	inFlight bool

	degraded  bool
	dismissed bool
	lastErr   string
}

func newRefresher(page string, interval, timeout time.Duration) refresher {
	if interval <= 0 {
		interval = model.DefaultRefreshInterval
	}
	if timeout <= 0 {
		timeout = model.DefaultRequestTimeout
	}
	return refresher{page: page, interval: interval, timeout: timeout}
}

// restart begins a new tick chain and issues an immediate fetch. Called
// from the page's Init, which also runs again on every page switch.
func (r *refresher) restart() (seq uint64, tick tea.Cmd) {
	r.gen++
	r.seq++
	r.inFlight = true
	return r.seq, tickCmd(r.page, r.gen, r.interval)
}

// handleTick processes a TickMsg. fetch is true when the page should
// issue a fetch with the returned sequence; cont continues the tick
// chain and is nil for ticks that belong to a dead chain.
func (r *refresher) handleTick(msg TickMsg) (fetch bool, seq uint64, cont tea.Cmd) {
	if msg.Page != r.page || msg.Gen != r.gen {
		return false, 0, nil
	}
	cont = tickCmd(r.page, r.gen, r.interval)
	if r.inFlight {
		return false, 0, cont
	}
	r.seq++
	r.inFlight = true
	return true, r.seq, cont
}

// force issues an immediate fetch, superseding any in-flight one.
func (r *refresher) force() uint64 {
	r.seq++
	r.inFlight = true
	return r.seq
}

// accept reports whether a response with the given sequence is current.
// Stale responses are dropped without touching any state.
func (r *refresher) accept(seq uint64) bool {
	if seq != r.seq {
		return false
	}
	r.inFlight = false
	return true
}

// setResult records the fetch outcome for the degraded banner. A fresh
// failure un-dismisses the banner.
func (r *refresher) setResult(err error) {
	if err == nil {
		r.degraded = false
		r.dismissed = false
		r.lastErr = ""
		return
	}
	r.degraded = true
	r.dismissed = false
	r.lastErr = err.Error()
}

// banner renders the degraded-mode line, or "" when healthy or
// dismissed.
func (r *refresher) banner() string {
	if !r.degraded || r.dismissed {
		return ""
	}
	return bannerStyle.Render("DEGRADED MODE - showing cached sample data (" + r.lastErr + ") [x] dismiss")
}

func (r *refresher) dismiss() {
	r.dismissed = true
}

// fetchCtx bounds one fetch.
func (r *refresher) fetchCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}
