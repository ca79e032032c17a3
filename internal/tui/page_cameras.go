package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegisgate/aegis/internal/degraded"
	"github.com/aegisgate/aegis/internal/model"
)

type camerasLoadedMsg struct {
	seq     uint64
	cameras []model.Camera
	err     error
}

// CamerasPage lists every camera with live status and counters.
type CamerasPage struct {
	src  Source
	keys KeyMap
	refresher

	cameras []model.Camera
	cursor  int
	loaded  bool
}

// NewCamerasPage creates the cameras page.
func NewCamerasPage(src Source, interval, timeout time.Duration) *CamerasPage {
	return &CamerasPage{
		src:       src,
		keys:      DefaultKeyMap(),
		refresher: newRefresher(PageCameras, interval, timeout),
	}
}

func (p *CamerasPage) ID() string { return PageCameras }

func (p *CamerasPage) Init() tea.Cmd {
	seq, tick := p.restart()
	return tea.Batch(p.fetchCmd(seq), tick)
}

func (p *CamerasPage) fetchCmd(seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := p.fetchCtx()
		defer cancel()
		cams, err := p.src.Cameras(ctx)
		return camerasLoadedMsg{seq: seq, cameras: cams, err: err}
	}
}

func (p *CamerasPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit), key.Matches(msg, p.keys.ForceQuit):
			return tea.Quit, nil
		case key.Matches(msg, p.keys.Refresh):
			return p.fetchCmd(p.force()), nil
		case key.Matches(msg, p.keys.Dismiss):
			p.dismiss()
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.cameras)-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.GoDashboard):
			return nil, &PageNav{PageID: PageDashboard}
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

	case camerasLoadedMsg:
		if !p.accept(msg.seq) {
			return nil, nil
		}
		p.setResult(msg.err)
		if msg.err != nil {
			p.cameras = degraded.Cameras()
		} else {
			p.cameras = msg.cameras
		}
		if p.cursor >= len(p.cameras) {
			p.cursor = max(len(p.cameras)-1, 0)
		}
		p.loaded = true
	}

	return nil, nil
}

func (p *CamerasPage) View(width, height int) string {
	if !p.loaded {
		return helpStyle.Render("Loading...")
	}

	var sections []string
	if b := p.banner(); b != "" {
		sections = append(sections, b)
	}
	sections = append(sections, titleStyle.Render("Cameras"))

	header := headerRowStyle.Render(fmt.Sprintf(
		"  %-12s %-20s %-28s %-8s %6s %7s",
		"ID", "Name", "Location", "Status", "FPS", "People"))
	rows := []string{header}

	for i, cam := range p.cameras {
		marker := "  "
		if i == p.cursor {
			marker = "> "
		}
		status := cameraStatusStyle(cam.Status).Render(fmt.Sprintf("%-8s", cam.Status))
		row := fmt.Sprintf("%s%-12s %-20s %-28s %s %6.1f %7d",
			marker, cam.ID, cam.Name, cam.Location, status, cam.FPS, cam.PersonCount)
		if cam.Error != "" {
			row += "  " + lipgloss.NewStyle().Foreground(ColorBad).Render(cam.Error)
		}
		if i == p.cursor {
			row = selectedRowStyle.Render(row)
		}
		rows = append(rows, row)
	}
	if len(p.cameras) == 0 {
		rows = append(rows, helpStyle.Render("  No cameras reported"))
	}

	sections = append(sections, sectionStyle.Width(max(width-2, 60)).Render(strings.Join(rows, "\n")))
	sections = append(sections, helpStyle.Render("↑/↓ select · r refresh · 1-4 pages · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
