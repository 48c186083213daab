package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wellpath/internal/models"
)

// CompleteTaskMsg asks the parent model to complete a task.
type CompleteTaskMsg struct {
	ID string
}

type Item struct {
	Task    models.Task
	Done    bool
	Minutes int
}

func (i Item) Title() string {
	box := "[ ]"
	if i.Done {
		box = "[x]"
	}
	icon := i.Task.Icon
	if icon == "" {
		icon = i.Task.Category.Icon()
	}
	title := i.Task.Title
	if i.Minutes > 0 {
		title = fmt.Sprintf("%s (%d min)", title, i.Minutes)
	}
	return fmt.Sprintf("%s %s %s", box, icon, title)
}

func (i Item) Description() string {
	return fmt.Sprintf("%s | %s | +%d pts", i.Task.Time, i.Task.TimeSlot, i.Task.Points)
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("enter", "x", " "),
			key.WithHelp("enter/x", "complete"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	empty string
}

// New builds a list; empty is shown when there are no items.
func New(title, empty string, items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete}
	}

	return Model{list: l, keys: keys, empty: empty}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// SetItems replaces the items and keeps the cursor where it was.
func (m *Model) SetItems(items []Item) {
	idx := m.list.Index()
	m.list.SetItems(toListItems(items))
	if idx < len(items) {
		m.list.Select(idx)
	}
}

// Selected returns the highlighted item.
func (m Model) Selected() (Item, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Complete) {
			if it, ok := m.Selected(); ok && !it.Done {
				id := it.Task.ID
				return m, func() tea.Msg { return CompleteTaskMsg{ID: id} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  " + m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
