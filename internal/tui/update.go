package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, status line and help take the remaining rows.
		h, v := docStyle.GetFrameSize()
		bodyHeight := max(msg.Height-v-4, 1)
		m.todayList.SetSize(msg.Width-h, bodyHeight)
		m.challengeList.SetSize(msg.Width-h, bodyHeight)
		m.summaryModel.SetSize(msg.Width-h, bodyHeight)
		return m, nil

	case tasklist.CompleteTaskMsg:
		m.completeTask(msg.ID)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch m.state {
	case StateToday:
		m.todayList, cmd = m.todayList.Update(msg)
	case StateChallenge:
		m.challengeList, cmd = m.challengeList.Update(msg)
	case StateProgress:
		m.summaryModel, cmd = m.summaryModel.Update(msg)
	}
	return m, cmd
}

type userMessager interface {
	UserMessage() string
}

func (m *Model) completeTask(id string) {
	res, err := m.day.Complete(id)
	if err != nil {
		m.statusIsError = true
		var um userMessager
		if errors.As(err, &um) {
			m.status = um.UserMessage()
		} else {
			m.status = err.Error()
		}
		return
	}

	m.statusIsError = false
	switch {
	case res.PerfectDayAwarded:
		m.status = fmt.Sprintf("🏆 Perfect day! +%d points, +%d bonus", res.Record.PointsEarned, constants.PerfectDayBonus)
	case res.Created:
		m.status = fmt.Sprintf("✓ +%d points (%d total)", res.Record.PointsEarned, res.TotalPoints)
	default:
		m.status = "Already completed"
	}
	m.refresh()
}
