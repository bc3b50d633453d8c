// Package status renders the one-line status bar at the top of the TUI.
package status

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/userdeck/userdeck/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Endpoint  string
	InFlight  int
	Loaded    bool
	Count     int
	LastError string
	Width     int

	spinner spinner.Model
}

// New creates a status bar model for endpoint.
func New(endpoint string) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorInfo)
	return Model{Endpoint: endpoint, spinner: sp}
}

// Tick starts the spinner animation.
func (m Model) Tick() tea.Msg {
	return m.spinner.Tick()
}

// Update advances the spinner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// SetUsers records what the store currently holds.
func (m *Model) SetUsers(loaded bool, count int) {
	m.Loaded = loaded
	m.Count = count
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var loadStr string
	if m.InFlight > 0 {
		loadStr = m.spinner.View() + lipgloss.NewStyle().Foreground(theme.ColorInfo).Render(" Loading…")
	} else {
		loadStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Idle")
	}

	var usersStr string
	if m.Loaded {
		usersStr = fmt.Sprintf("%d users", m.Count)
	} else {
		usersStr = theme.StyleDimmed.Render("not loaded")
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := loadStr + sep + usersStr + sep + theme.StyleDimmed.Render(m.Endpoint)
	if m.LastError != "" {
		content += sep + lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("last load failed")
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
