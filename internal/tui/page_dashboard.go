package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegisgate/aegis/internal/degraded"
	"github.com/aegisgate/aegis/internal/model"
)

type dashboardLoadedMsg struct {
	seq  uint64
	snap model.Snapshot
	err  error
}

// DashboardPage shows the aggregate counters, the access-outcome chart,
// and a camera summary. It refreshes on its own tick.
type DashboardPage struct {
	src  Source
	keys KeyMap
	refresher

	snap   model.Snapshot
	loaded bool
}

// NewDashboardPage creates the dashboard page.
func NewDashboardPage(src Source, interval, timeout time.Duration) *DashboardPage {
	return &DashboardPage{
		src:       src,
		keys:      DefaultKeyMap(),
		refresher: newRefresher(PageDashboard, interval, timeout),
	}
}

func (p *DashboardPage) ID() string { return PageDashboard }

func (p *DashboardPage) Init() tea.Cmd {
	seq, tick := p.restart()
	return tea.Batch(p.fetchCmd(seq), tick)
}

func (p *DashboardPage) fetchCmd(seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := p.fetchCtx()
		defer cancel()
		snap, err := p.src.Snapshot(ctx)
		return dashboardLoadedMsg{seq: seq, snap: snap, err: err}
	}
}

func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit), key.Matches(msg, p.keys.ForceQuit):
			return tea.Quit, nil
		case key.Matches(msg, p.keys.Refresh):
			return p.fetchCmd(p.force()), nil
		case key.Matches(msg, p.keys.Dismiss):
			p.dismiss()
		case key.Matches(msg, p.keys.GoCameras):
			return nil, &PageNav{PageID: PageCameras}
		case key.Matches(msg, p.keys.GoLogs):
			return nil, &PageNav{PageID: PageLogs}
		case key.Matches(msg, p.keys.GoEmployees):
			return nil, &PageNav{PageID: PageEmployees}
		}

	case TickMsg:
		fetch, seq, cont := p.handleTick(msg)
		if fetch {
			return tea.Batch(p.fetchCmd(seq), cont), nil
		}
		return cont, nil

	case dashboardLoadedMsg:
		if !p.accept(msg.seq) {
			return nil, nil
		}
		p.setResult(msg.err)
		snap := msg.snap
		if msg.err != nil {
			// Failed slots fall back to the built-in sample data so
			// the dashboard stays populated.
			if snap.Stats == nil {
				stats := degraded.Stats()
				snap.Stats = &stats
			}
			if snap.Cameras == nil {
				snap.Cameras = degraded.Cameras()
			}
			if snap.Logs == nil {
				snap.Logs = degraded.AccessLogs()
			}
		}
		p.snap = snap
		p.loaded = true
	}

	return nil, nil
}

func (p *DashboardPage) View(width, height int) string {
	if !p.loaded {
		return helpStyle.Render("Loading...")
	}

	var sections []string
	if b := p.banner(); b != "" {
		sections = append(sections, b)
	}

	stats := p.snap.Stats
	if stats != nil {
		counters := fmt.Sprintf(
			"People detected: %s   Active cameras: %s/%d   Employees: %s",
			statStyle.Render(fmt.Sprint(stats.PeopleDetected)),
			statStyle.Render(fmt.Sprint(stats.ActiveCameras)),
			stats.TotalCameras,
			statStyle.Render(fmt.Sprint(stats.TotalEmployees)),
		)
		header := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("System Overview"),
			counters,
			helpStyle.Render("Updated "+stats.LastUpdate.Format("15:04:05")),
		)
		sections = append(sections, sectionStyle.Width(max(width-2, 40)).Render(header))

		chart := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Access Outcomes"),
			renderOutcomeChart(stats, max(width-8, 32)),
		)
		sections = append(sections, sectionStyle.Width(max(width-2, 40)).Render(chart))
	}

	sections = append(sections, p.renderCameraSummary(max(width-2, 40)))
	sections = append(sections, helpStyle.Render("r refresh · 1-4 pages · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p *DashboardPage) renderCameraSummary(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Cameras"))
	for _, cam := range p.snap.Cameras {
		status := cameraStatusStyle(cam.Status).Render(string(cam.Status))
		line := fmt.Sprintf("%-18s %-28s %s", cam.Name, cam.Location, status)
		if cam.Status == model.StatusOnline {
			line += fmt.Sprintf("  %.1f fps, %d people", cam.FPS, cam.PersonCount)
		}
		lines = append(lines, line)
	}
	if len(p.snap.Cameras) == 0 {
		lines = append(lines, helpStyle.Render("No cameras reported"))
	}
	return sectionStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderOutcomeChart draws granted/denied/tailgating counts as a bar
// chart with a numeric legend.
func renderOutcomeChart(stats *model.SystemStats, width int) string {
	chartHeight := 6
	chartWidth := width - 22
	if chartWidth < 12 {
		chartWidth = 12
	}

	bars := []struct {
		name  string
		count int
		color lipgloss.Color
	}{
		{"Granted", stats.AccessGranted, ColorGood},
		{"Denied", stats.AccessDenied, ColorBad},
		{"Tailgating", stats.TailgatingIncidents, ColorAlert},
	}

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(2),
		barchart.WithBarWidth(3),
	)
	for _, b := range bars {
		style := lipgloss.NewStyle().Foreground(b.color).Background(b.color)
		bc.Push(barchart.BarData{
			Label: b.name[:1],
			Values: []barchart.BarValue{
				{Name: b.name, Value: float64(b.count), Style: style},
			},
		})
	}
	bc.Draw()

	var legendLines []string
	for _, b := range bars {
		label := fmt.Sprintf("%-10s: %5d", b.name, b.count)
		legendLines = append(legendLines, lipgloss.NewStyle().Foreground(b.color).Render(label))
	}
	legend := strings.Join(legendLines, "\n")

	return lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", legend)
}
