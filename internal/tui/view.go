package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wellpath/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.todayList.View()
	case StateChallenge:
		content = m.challengeList.View()
	case StateProgress:
		content = m.summaryModel.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	day := dayStyle.Render(fmt.Sprintf("Day %d/%d  %s", m.day.Number, constants.ChallengeDays, m.day.Date))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, day)...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return dangerStyle.Render(m.status)
	}
	return successStyle.Render(m.status)
}
