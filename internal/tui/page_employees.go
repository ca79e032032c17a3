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

type employeesLoadedMsg struct {
	seq       uint64
	employees []model.Employee
	err       error
}

// EmployeesPage lists the registered employees.
type EmployeesPage struct {
	src  Source
	keys KeyMap
	refresher

	employees []model.Employee
	cursor    int
	loaded    bool
}

// NewEmployeesPage creates the employees page.
func NewEmployeesPage(src Source, interval, timeout time.Duration) *EmployeesPage {
	return &EmployeesPage{
		src:       src,
		keys:      DefaultKeyMap(),
		refresher: newRefresher(PageEmployees, interval, timeout),
	}
}

func (p *EmployeesPage) ID() string { return PageEmployees }

func (p *EmployeesPage) Init() tea.Cmd {
	seq, tick := p.restart()
	return tea.Batch(p.fetchCmd(seq), tick)
}

func (p *EmployeesPage) fetchCmd(seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := p.fetchCtx()
		defer cancel()
		emps, err := p.src.Employees(ctx)
		return employeesLoadedMsg{seq: seq, employees: emps, err: err}
	}
}

func (p *EmployeesPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
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
			if p.cursor < len(p.employees)-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.GoDashboard):
			return nil, &PageNav{PageID: PageDashboard}
		case key.Matches(msg, p.keys.GoCameras):
			return nil, &PageNav{PageID: PageCameras}
		case key.Matches(msg, p.keys.GoLogs):
			return nil, &PageNav{PageID: PageLogs}
		}

	case TickMsg:
		fetch, seq, cont := p.handleTick(msg)
		if fetch {
			return tea.Batch(p.fetchCmd(seq), cont), nil
		}
		return cont, nil

	case employeesLoadedMsg:
		if !p.accept(msg.seq) {
			return nil, nil
		}
		p.setResult(msg.err)
		if msg.err != nil {
			p.employees = degraded.Employees()
		} else {
			p.employees = msg.employees
		}
		if p.cursor >= len(p.employees) {
			p.cursor = max(len(p.employees)-1, 0)
		}
		p.loaded = true
	}

	return nil, nil
}

func (p *EmployeesPage) View(width, height int) string {
	if !p.loaded {
		return helpStyle.Render("Loading...")
	}

	var sections []string
	if b := p.banner(); b != "" {
		sections = append(sections, b)
	}
	sections = append(sections, titleStyle.Render("Employees"))

	header := headerRowStyle.Render(fmt.Sprintf(
		"  %-10s %-20s %-28s %-14s %-10s %s",
		"ID", "Name", "Email", "Department", "Status", "Registered"))
	rows := []string{header}
	for i, emp := range p.employees {
		marker := "  "
		if i == p.cursor {
			marker = "> "
		}
		status := string(emp.Status)
		if emp.Status == model.EmployeeInactive {
			status = lipgloss.NewStyle().Foreground(ColorDim).Render(status)
		} else {
			status = lipgloss.NewStyle().Foreground(ColorGood).Render(status)
		}
		row := fmt.Sprintf("%s%-10s %-20s %-28s %-14s %-10s %s",
			marker, emp.ID, emp.Name, emp.Email, emp.Department, status,
			emp.RegisteredDate.Format("2006-01-02"))
		if i == p.cursor {
			row = selectedRowStyle.Render(row)
		}
		rows = append(rows, row)
	}
	if len(p.employees) == 0 {
		rows = append(rows, helpStyle.Render("  No employees registered"))
	}

	sections = append(sections, sectionStyle.Width(max(width-2, 70)).Render(strings.Join(rows, "\n")))
	sections = append(sections, helpStyle.Render("↑/↓ select · r refresh · 1-4 pages · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
