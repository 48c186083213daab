package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/tracker"
	"github.com/julianstephens/wellpath/internal/tui/components/summary"
	"github.com/julianstephens/wellpath/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateChallenge
	StateProgress
)

var tabTitles = []string{"Today", "Challenge", "Progress"}

type Model struct {
	day           *tracker.Day
	state         SessionState
	keys          KeyMap
	help          help.Model
	todayList     tasklist.Model
	challengeList tasklist.Model
	summaryModel  summary.Model
	status        string
	statusIsError bool
	quitting      bool
	width         int
	height        int
}

// NewModel builds the view over an opened challenge day. Completions made in
// the TUI go through the day's session.
func NewModel(day *tracker.Day) Model {
	m := Model{
		day:           day,
		state:         StateToday,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		todayList:     tasklist.New("Today", "No tasks scheduled for today.", nil, 0, 0),
		challengeList: tasklist.New("Challenge", "No challenge tasks for today.", nil, 0, 0),
		summaryModel:  summary.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads every component from the day.
func (m *Model) refresh() {
	var today []tasklist.Item
	for _, st := range m.day.Schedule.All() {
		today = append(today, tasklist.Item{Task: st.Task, Done: st.Completed, Minutes: st.Minutes})
	}
	m.todayList.SetItems(today)

	var challenge []tasklist.Item
	if m.day.Plan != nil {
		for _, t := range m.day.Plan.Tasks {
			challenge = append(challenge, tasklist.Item{Task: t, Done: m.day.Session.Completed(t.ID)})
		}
	}
	m.challengeList.SetItems(challenge)

	sum, err := m.day.Session.Summary()
	if err != nil {
		logger.Warn("Failed to build progress summary", "error", err)
		return
	}
	m.summaryModel.SetSummary(sum)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state != StateProgress {
		keys = append(keys, m.keys.Complete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state != StateProgress {
		actions = []key.Binding{m.keys.Complete}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
