package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wellpath/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

func checkbox(done bool) string {
	if done {
		return doneStyle.Render("[x]")
	}
	return "[ ]"
}

func icon(t models.Task) string {
	if t.Icon != "" {
		return t.Icon
	}
	return t.Category.Icon()
}

func renderTaskLine(t models.Task, done bool, minutes int) string {
	title := t.Title
	if minutes > 0 {
		title = fmt.Sprintf("%s (%d min)", title, minutes)
	}
	return fmt.Sprintf("  %s %s %s %s %s\n",
		checkbox(done),
		timeStyle.Render(t.Time),
		icon(t),
		title,
		mutedStyle.Render(fmt.Sprintf("+%d  %s", t.Points, t.ID)),
	)
}

func renderSchedule(s models.DaySchedule) string {
	var b strings.Builder
	for _, slot := range models.TimeSlots {
		tasks := s.Slot(slot)
		if len(tasks) == 0 {
			continue
		}
		start, end := slot.Range()
		b.WriteString(slotStyle.Render(fmt.Sprintf("%s (%s-%s)", strings.ToUpper(slot.String()), start, end)))
		b.WriteString("\n")
		for _, t := range tasks {
			b.WriteString(renderTaskLine(t.Task, t.Completed, t.Minutes))
			if t.Description != "" {
				b.WriteString("          " + mutedStyle.Render(t.Description) + "\n")
			}
		}
	}
	return b.String()
}

func renderPlan(p models.DayPlan, completed map[string]bool) string {
	var b strings.Builder
	if len(p.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("  No challenge tasks for this day.") + "\n")
		return b.String()
	}
	for _, t := range p.Tasks {
		b.WriteString(renderTaskLine(t, completed[t.ID], 0))
		if t.Reason != "" {
			b.WriteString("          " + mutedStyle.Render(t.Reason) + "\n")
		}
	}
	return b.String()
}
