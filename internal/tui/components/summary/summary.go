package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/tracker"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	bonusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

type Model struct {
	viewport viewport.Model
	Summary  *tracker.Summary
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Summary == nil {
		return "Progress unavailable."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetSummary(s tracker.Summary) {
	m.Summary = &s
	m.Render()
}

func row(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value) + "\n"
}

func (m *Model) Render() {
	if m.Summary == nil {
		m.viewport.SetContent("Progress unavailable.")
		return
	}
	s := m.Summary

	var b strings.Builder
	b.WriteString(row("Day", fmt.Sprintf("%d of %d (%d remaining)", s.Day, constants.ChallengeDays, s.DaysRemaining)))
	b.WriteString(row("Today", fmt.Sprintf("%d/%d tasks (%d%%)", s.Progress.Completed, s.Progress.Total, s.Progress.Percentage)))
	b.WriteString(row("Points", fmt.Sprintf("%d/%d today, %d total", s.Progress.Points, s.Progress.PossiblePoints, s.TotalPoints)))

	streak := fmt.Sprintf("%d day(s)", s.Streak)
	b.WriteString(labelStyle.Render("Streak") + " " + valueStyle.Render(streak))
	if s.StreakBonus > 0 {
		b.WriteString(" " + bonusStyle.Render(fmt.Sprintf("+%d bonus", s.StreakBonus)))
	}
	b.WriteString("\n\n")
	b.WriteString(s.Message + "\n")

	if len(s.Badges) > 0 {
		b.WriteString("\n")
		for _, badge := range s.Badges {
			b.WriteString(fmt.Sprintf("  %s %s\n", badge.Icon, badge.Title))
		}
	}
	if s.NextMilestone != nil {
		b.WriteString("\n" + noteStyle.Render(fmt.Sprintf("Next milestone: %s %s in %d day(s)",
			s.NextMilestone.Icon, s.NextMilestone.Title, s.NextMilestone.Days-s.Streak)) + "\n")
	}
	m.viewport.SetContent(b.String())
}
