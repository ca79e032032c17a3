package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aegisgate/aegis/internal/model"
)

// Palette shared across pages.
var (
	ColorAccent = lipgloss.Color("39")
	ColorDim    = lipgloss.Color("244")
	ColorGood   = lipgloss.Color("42")
	ColorWarn   = lipgloss.Color("208")
	ColorBad    = lipgloss.Color("196")
	ColorAlert  = lipgloss.Color("201")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(ColorDim).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Underline(true).
			Padding(0, 1)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("130")).
			Padding(0, 1)

	statStyle = lipgloss.NewStyle().
			Bold(true)
)

// tabBar renders the page strip shown above every page.
func tabBar(order []string, active string) string {
	var out string
	for _, id := range order {
		label := tabLabel(id)
		if id == active {
			out += activeTabStyle.Render(label)
		} else {
			out += tabStyle.Render(label)
		}
	}
	return out
}

func tabLabel(id string) string {
	switch id {
	case PageDashboard:
		return "1 Dashboard"
	case PageCameras:
		return "2 Cameras"
	case PageLogs:
		return "3 Access Logs"
	case PageEmployees:
		return "4 Employees"
	}
	return id
}

func cameraStatusStyle(s model.CameraStatus) lipgloss.Style {
	switch s {
	case model.StatusOnline:
		return lipgloss.NewStyle().Foreground(ColorGood)
	case model.StatusOffline:
		return lipgloss.NewStyle().Foreground(ColorDim)
	case model.StatusError:
		return lipgloss.NewStyle().Foreground(ColorBad)
	}
	return lipgloss.NewStyle().Foreground(ColorWarn)
}

func resultStyle(r model.AccessResult) lipgloss.Style {
	switch r {
	case model.ResultGranted:
		return lipgloss.NewStyle().Foreground(ColorGood)
	case model.ResultDenied:
		return lipgloss.NewStyle().Foreground(ColorBad)
	case model.ResultTailgating:
		return lipgloss.NewStyle().Foreground(ColorAlert)
	}
	return lipgloss.NewStyle().Foreground(ColorWarn)
}
