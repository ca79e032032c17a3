package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegisgate/aegis/internal/degraded"
	"github.com/aegisgate/aegis/internal/filter"
	"github.com/aegisgate/aegis/internal/model"
)

type logsLoadedMsg struct {
	seq  uint64
	logs []model.AccessLogEntry
	err  error
}

// statusCycle is the order the status filter steps through.
var statusCycle = []string{"", "granted", "denied", "tailgating"}

// LogsPage is the filterable, paginated access-log view.
type LogsPage struct {
	src  Source
	keys KeyMap
	refresher

	entries []model.AccessLogEntry
	engine  *filter.Engine
	search  textinput.Model
	typing  bool
	notice  string
	loaded  bool
}

// NewLogsPage creates the access-log page.
func NewLogsPage(src Source, interval, timeout time.Duration) *LogsPage {
	ti := textinput.New()
	ti.Placeholder = "search logs"
	ti.CharLimit = 64
	ti.Width = 32

	return &LogsPage{
		src:       src,
		keys:      DefaultKeyMap(),
		refresher: newRefresher(PageLogs, interval, timeout),
		engine:    filter.NewEngine(model.DefaultPageSize),
		search:    ti,
	}
}

func (p *LogsPage) ID() string { return PageLogs }

func (p *LogsPage) Init() tea.Cmd {
	seq, tick := p.restart()
	return tea.Batch(p.fetchCmd(seq), tick)
}

func (p *LogsPage) fetchCmd(seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := p.fetchCtx()
		defer cancel()
		logs, err := p.src.AccessLogs(ctx, model.LogQuery{Limit: model.DefaultLogLimit})
		return logsLoadedMsg{seq: seq, logs: logs, err: err}
	}
}

func (p *LogsPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.typing {
			return p.updateSearch(msg), nil
		}
		return p.handleKey(msg)

	case TickMsg:
		fetch, seq, cont := p.handleTick(msg)
		if fetch {
			return tea.Batch(p.fetchCmd(seq), cont), nil
		}
		return cont, nil

	case logsLoadedMsg:
		if !p.accept(msg.seq) {
			return nil, nil
		}
		p.setResult(msg.err)
		if msg.err != nil {
			p.entries = degraded.AccessLogs()
		} else {
			p.entries = msg.logs
		}
		p.loaded = true
	}

	return nil, nil
}

// updateSearch routes keystrokes into the search input and applies the
// term live so the page cursor resets as the criteria change.
func (p *LogsPage) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		p.typing = false
		p.search.Blur()
		return nil
	case tea.KeyEscape:
		p.typing = false
		p.search.SetValue("")
		p.search.Blur()
		p.applyCriteria()
		return nil
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.applyCriteria()
	return cmd
}

func (p *LogsPage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, p.keys.Quit), key.Matches(msg, p.keys.ForceQuit):
		return tea.Quit, nil
	case key.Matches(msg, p.keys.Refresh):
		return p.fetchCmd(p.force()), nil
	case key.Matches(msg, p.keys.Dismiss):
		p.dismiss()
	case key.Matches(msg, p.keys.Search):
		p.typing = true
		p.notice = ""
		return p.search.Focus(), nil
	case key.Matches(msg, p.keys.CycleStatus):
		p.cycleStatus()
	case key.Matches(msg, p.keys.ClearFilters):
		p.search.SetValue("")
		p.engine.SetCriteria(model.FilterCriteria{})
	case key.Matches(msg, p.keys.NextPage):
		p.engine.NextPage()
	case key.Matches(msg, p.keys.PrevPage):
		p.engine.PrevPage()
	case key.Matches(msg, p.keys.Export):
		p.notice = p.exportVisible()
	case key.Matches(msg, p.keys.Escape):
		p.notice = ""
	case key.Matches(msg, p.keys.GoDashboard):
		return nil, &PageNav{PageID: PageDashboard}
	case key.Matches(msg, p.keys.GoCameras):
		return nil, &PageNav{PageID: PageCameras}
	case key.Matches(msg, p.keys.GoEmployees):
		return nil, &PageNav{PageID: PageEmployees}
	}
	return nil, nil
}

func (p *LogsPage) applyCriteria() {
	c := p.engine.Criteria()
	c.Search = p.search.Value()
	p.engine.SetCriteria(c)
}

func (p *LogsPage) cycleStatus() {
	c := p.engine.Criteria()
	for i, s := range statusCycle {
		if c.Status == s {
			c.Status = statusCycle[(i+1)%len(statusCycle)]
			p.engine.SetCriteria(c)
			return
		}
	}
	c.Status = statusCycle[0]
	p.engine.SetCriteria(c)
}

// exportVisible writes the currently visible slice to a CSV file in the
// working directory and returns a notice for the status line.
func (p *LogsPage) exportVisible() string {
	page := p.engine.Apply(p.entries)
	name := fmt.Sprintf("access_logs_%s.csv", time.Now().Format("20060102_150405"))

	if err := writeCSVFile(name, page.Entries); err != nil {
		return "export failed: " + err.Error()
	}
	return fmt.Sprintf("exported %d entries to %s", len(page.Entries), name)
}

// writeCSVFile writes entries to name. The close error matters here: a
// full disk surfaces on Close, and a truncated export must not report
// success.
func writeCSVFile(name string, entries []model.AccessLogEntry) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := filter.WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (p *LogsPage) View(width, height int) string {
	if !p.loaded {
		return helpStyle.Render("Loading...")
	}

	page := p.engine.Apply(p.entries)

	var sections []string
	if b := p.banner(); b != "" {
		sections = append(sections, b)
	}
	sections = append(sections, titleStyle.Render("Access Logs"))
	sections = append(sections, p.renderFilters())

	header := headerRowStyle.Render(fmt.Sprintf(
		"%-20s %-10s %-10s %-18s %-11s %s",
		"Timestamp", "Camera", "Person", "Type", "Status", "Confidence"))
	rows := []string{header}
	for _, e := range page.Entries {
		status := resultStyle(e.AccessResult).Render(fmt.Sprintf("%-11s", e.AccessResult))
		conf := "N/A"
		if e.Confidence != nil {
			conf = fmt.Sprintf("%.1f%%", *e.Confidence*100)
		}
		rows = append(rows, fmt.Sprintf("%-20s %-10s %-10s %-18s %s %s",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.CameraID, e.PersonID, e.AccessType, status, conf))
	}
	if page.TotalCount == 0 {
		rows = append(rows, helpStyle.Render("No matching entries"))
	}
	sections = append(sections, sectionStyle.Width(max(width-2, 70)).Render(strings.Join(rows, "\n")))

	pager := fmt.Sprintf("Page %d/%d · %d entries", page.PageNum, max(page.TotalPages, 1), page.TotalCount)
	sections = append(sections, helpStyle.Render(pager))
	if p.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(ColorGood).Render(p.notice))
	}
	sections = append(sections, helpStyle.Render("/ search · s status · c clear · ←/→ page · e export · r refresh · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p *LogsPage) renderFilters() string {
	c := p.engine.Criteria()
	parts := []string{"Search: " + p.search.View()}
	status := c.Status
	if status == "" {
		status = "all"
	}
	parts = append(parts, "Status: "+statStyle.Render(status))
	if c.EmployeeID != "" {
		parts = append(parts, "Employee: "+c.EmployeeID)
	}
	if c.CameraID != "" {
		parts = append(parts, "Camera: "+c.CameraID)
	}
	return strings.Join(parts, "   ")
}
